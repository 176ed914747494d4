package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/cpfolio"
	"github.com/etnz/cpfolio/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistInstruction frames the model as a cautious advisor on this exact
// portfolio; everything it needs is in the report it receives.
const assistInstruction = `You are a cautious financial analyst reviewing a small
Singapore CPF investment portfolio. You receive the daily evaluation report:
paper and net P&L after DBS Vickers fees and CPF opportunity cost, breakeven
prices and rule-based suggestions. Comment on the positions in plain terms,
flag anything the rule-based suggestions might miss, and never present your
commentary as personalized financial advice. Answer in markdown.`

type assistCmd struct {
	config string
	date   string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask Gemini to comment on today's report" }
func (*assistCmd) Usage() string {
	return `cpfr assist [-c <config>] [-d <date>] [question]

  Builds today's report and asks Gemini for commentary, optionally focused
  on a question. Requires Gemini credentials in the environment.

Usage Examples:
$ cpfr assist "should I take the DBS profit now or wait for the target?"
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.StringVar(&c.date, "d", "", "Evaluation date (defaults to today)")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	md := renderer.ReportMarkdown(report, cpfolio.MacroSnapshot{}, nil)

	prompt := md
	if f.NArg() > 0 {
		prompt = fmt.Sprintf("%s\n\nQuestion: %s", md, strings.Join(f.Args(), " "))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("initializing Gemini client: %w", err))
	}
	chat, err := client.Chats.Create(ctx, cfg.Assist.Model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistInstruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return fail(fmt.Errorf("starting Gemini chat: %w", err))
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return fail(fmt.Errorf("asking Gemini: %w", err))
	}

	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
