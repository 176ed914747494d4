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
)

type pushCmd struct {
	config string
}

func (*pushCmd) Name() string     { return "push" }
func (*pushCmd) Synopsis() string { return "push the report summary to WeChat" }
func (*pushCmd) Usage() string {
	return `cpfr push [-c <config>]

  Builds today's report and pushes the compact summary to WeChat through the
  ServerChan relay. The send key comes from push.send_key in the config file
  or the CPFOLIO_SENDKEY environment variable.
`
}

func (c *pushCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
}

func (c *pushCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}

	report, err := cpfolio.BuildReport(ctx, cfg, market(), date.Today())
	if err != nil {
		return fail(err)
	}

	title := fmt.Sprintf("CPF Portfolio %s: net %s", report.AsOf, report.TotalNetPnL.SignedString())
	if err := cfg.Push.Push(ctx, cpfolio.DailyClient(), title, renderer.SummaryMarkdown(report)); err != nil {
		return fail(err)
	}
	fmt.Fprintln(os.Stderr, "Report summary pushed to WeChat")
	return subcommands.ExitSuccess
}
