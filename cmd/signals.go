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

type signalsCmd struct {
	config string
	bars   int
}

func (*signalsCmd) Name() string     { return "signals" }
func (*signalsCmd) Synopsis() string { return "display technical signals for every holding" }
func (*signalsCmd) Usage() string {
	return `cpfr signals [-c <config>] [-bars <n>]

  Computes moving averages, RSI, MACD, Bollinger bands, volume ratio and a
  composite 0-100 score from each holding's daily history.
`
}

func (c *signalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.IntVar(&c.bars, "bars", 0, "History window in calendar days (defaults to the configured window)")
}

func (c *signalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}
	if len(cfg.Holdings) == 0 {
		return fail(fmt.Errorf("no holdings configured in %s", defaultConfigFile))
	}
	window := cfg.Signals.Bars
	if c.bars > 0 {
		window = c.bars
	}

	src := market()
	var signals []cpfolio.Signal
	var skipped []string
	for _, h := range cfg.Holdings {
		bars, err := src.History(ctx, h.Symbol, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning, no history for %s: %v\n", h.Symbol, err)
			skipped = append(skipped, h.Symbol)
			continue
		}
		s, ok := cfg.Signals.Analyze(h.Symbol, bars)
		if !ok {
			skipped = append(skipped, h.Symbol)
			continue
		}
		signals = append(signals, s)
	}

	printMarkdown(renderer.SignalsMarkdown(date.Today().String(), signals, skipped))
	return subcommands.ExitSuccess
}
