package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cpfolio"
	"github.com/etnz/cpfolio/date"
	"github.com/etnz/cpfolio/renderer"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type watchCmd struct {
	config   string
	schedule string
	push     bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-run the daily report on a cron schedule" }
func (*watchCmd) Usage() string {
	return `cpfr watch [-c <config>] [-schedule <spec>] [-push]

  Runs the daily report on a cron schedule and keeps running until
  interrupted. The default schedule fires at 18:30 on SGX trading days,
  after the closing auction settles.

Usage Examples:
# Refresh every weekday evening and push the summary to WeChat.
$ cpfr watch -schedule "30 18 * * 1-5" -push
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.StringVar(&c.schedule, "schedule", "30 18 * * 1-5", "Cron schedule for the report runs")
	f.BoolVar(&c.push, "push", false, "Push each run's summary to WeChat")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Validate the configuration once upfront; each run reloads it so
	// portfolio edits are picked up without restarting the watch.
	if _, err := loadConfig(c.config); err != nil {
		return fail(err)
	}

	runner := cron.New()
	_, err := runner.AddFunc(c.schedule, func() { c.run(ctx) })
	if err != nil {
		return fail(fmt.Errorf("invalid schedule %q: %w", c.schedule, err))
	}

	fmt.Fprintf(os.Stderr, "Watching on schedule %q, Ctrl-C to stop.\n", c.schedule)
	c.run(ctx)
	runner.Start()
	<-ctx.Done()
	runner.Stop()
	return subcommands.ExitSuccess
}

func (c *watchCmd) run(ctx context.Context) {
	cfg, err := loadConfig(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	client := cpfolio.DailyClient()
	report, err := cpfolio.BuildReport(ctx, cfg, market(), date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	macro := cpfolio.FetchMacro(client)

	fmt.Println("\033[2J")
	printMarkdown(renderer.ReportMarkdown(report, macro, nil))

	if c.push {
		title := fmt.Sprintf("CPF Portfolio %s: net %s", report.AsOf, report.TotalNetPnL.SignedString())
		if err := cfg.Push.Push(ctx, client, title, renderer.SummaryMarkdown(report)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
