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

type riskCmd struct {
	config string
	bars   int
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "display the portfolio risk report" }
func (*riskCmd) Usage() string {
	return `cpfr risk [-c <config>] [-bars <n>]

  Computes volatility, maximum drawdown, value at risk, Sharpe and Sortino
  ratios per holding, the return correlation matrix, and the portfolio-level
  volatility with its diversification benefit.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.IntVar(&c.bars, "bars", 0, "History window in calendar days (defaults to the configured window)")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}
	if len(cfg.Holdings) == 0 {
		return fail(fmt.Errorf("no holdings configured in %s", defaultConfigFile))
	}
	window := cfg.Risk.Bars
	if c.bars > 0 {
		window = c.bars
	}

	src := market()
	histories := make(map[string][]cpfolio.Bar, len(cfg.Holdings))
	for _, h := range cfg.Holdings {
		bars, err := src.History(ctx, h.Symbol, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning, no history for %s: %v\n", h.Symbol, err)
			continue
		}
		histories[h.Symbol] = bars
	}

	report := cfg.Risk.AnalyzeRisk(cfg.Holdings, histories)
	printMarkdown(renderer.RiskMarkdown(date.Today().String(), report))
	return subcommands.ExitSuccess
}
