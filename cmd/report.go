package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cpfolio"
	"github.com/etnz/cpfolio/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	config   string
	date     string
	htmlFile string
	push     bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the daily portfolio report" }
func (*reportCmd) Usage() string {
	return `cpfr report [-c <config>] [-d <date>] [-html <file>] [-push]

  Evaluates every configured holding at the latest quote: paper and net P&L,
  transaction fees, CPF opportunity cost, breakeven price and a trading
  suggestion, plus portfolio totals and a market context line.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.StringVar(&c.date, "d", "", "Evaluation date (defaults to today)")
	f.StringVar(&c.htmlFile, "html", "", "Also write the report as a standalone HTML file")
	f.BoolVar(&c.push, "push", false, "Push the report summary to WeChat")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}
	asOf, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}

	client := cpfolio.DailyClient()
	report, err := cpfolio.BuildReport(ctx, cfg, market(), asOf)
	if err != nil {
		return fail(err)
	}
	macro := cpfolio.FetchMacro(client)
	extras := &renderer.ReportExtras{
		Fundamentals: cfg.Fundamentals.FetchFundamentals(client, cfg.Symbols()),
		News:         cfg.News.FetchNews(client, cfg.Symbols()),
	}

	md := renderer.ReportMarkdown(report, macro, extras)
	printMarkdown(md)

	if c.htmlFile != "" {
		html, err := renderer.HTML(fmt.Sprintf("CPF Portfolio Report on %s", asOf), md)
		if err != nil {
			return fail(err)
		}
		if err := os.WriteFile(c.htmlFile, []byte(html), 0644); err != nil {
			return fail(fmt.Errorf("writing %s: %w", c.htmlFile, err))
		}
		fmt.Fprintf(os.Stderr, "HTML report written to %s\n", c.htmlFile)
	}

	if c.push {
		title := fmt.Sprintf("CPF Portfolio %s: net %s", asOf, report.TotalNetPnL.SignedString())
		if err := cfg.Push.Push(ctx, client, title, renderer.SummaryMarkdown(report)); err != nil {
			return fail(err)
		}
		fmt.Fprintln(os.Stderr, "Report summary pushed to WeChat")
	}

	return subcommands.ExitSuccess
}
