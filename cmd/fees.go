package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cpfolio"
	"github.com/etnz/cpfolio/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type feesCmd struct {
	config string
}

func (*feesCmd) Name() string     { return "fees" }
func (*feesCmd) Synopsis() string { return "display the itemized transaction cost of a notional" }
func (*feesCmd) Usage() string {
	return `cpfr fees [-c <config>] <notional>

  Itemizes the broker's fee schedule on a trade notional: commission (with
  its flat minimum), clearing fee, trading fee, settlement fee and total.

Usage Examples:
# Cost of selling 5600 worth of shares.
$ cpfr fees 5600
`
}

func (c *feesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
}

func (c *feesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("expected exactly one notional amount, got %d arguments", f.NArg()))
	}
	value, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		return fail(fmt.Errorf("invalid notional %q: %w", f.Arg(0), err))
	}

	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}

	notional := cpfolio.M(value, cfg.Currency)
	breakdown, err := cfg.Fees.Breakdown(notional)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.FeesMarkdown(notional, breakdown))
	return subcommands.ExitSuccess
}
