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

type publishCmd struct {
	config     string
	date       string
	outputFile string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "write the daily report as a standalone HTML file" }
func (*publishCmd) Usage() string {
	return `cpfr publish [-c <config>] [-d <date>] [-o <file>]

  Builds the daily report and writes it as a self-contained HTML page,
  ready to serve from any static host.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.StringVar(&c.date, "d", "", "Evaluation date (defaults to today)")
	f.StringVar(&c.outputFile, "o", "report.html", "Output file for the HTML report")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}
	asOf, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}

	report, err := cpfolio.BuildReport(ctx, cfg, market(), asOf)
	if err != nil {
		return fail(err)
	}
	client := cpfolio.DailyClient()
	macro := cpfolio.FetchMacro(client)
	extras := &renderer.ReportExtras{
		Fundamentals: cfg.Fundamentals.FetchFundamentals(client, cfg.Symbols()),
		News:         cfg.News.FetchNews(client, cfg.Symbols()),
	}

	md := renderer.ReportMarkdown(report, macro, extras)
	html, err := renderer.HTML(fmt.Sprintf("CPF Portfolio Report on %s", asOf), md)
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.outputFile, []byte(html), 0644); err != nil {
		return fail(fmt.Errorf("writing %s: %w", c.outputFile, err))
	}

	fmt.Printf("HTML report written to %s\n", c.outputFile)
	return subcommands.ExitSuccess
}
