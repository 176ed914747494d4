package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cpfolio/renderer"
	"github.com/google/subcommands"
)

type breakevenCmd struct {
	config string
	date   string
}

func (*breakevenCmd) Name() string     { return "breakeven" }
func (*breakevenCmd) Synopsis() string { return "display the breakeven price of every holding" }
func (*breakevenCmd) Usage() string {
	return `cpfr breakeven [-c <config>] [-d <date>]

  Solves, for every configured holding, the minimum sale price at which the
  proceeds cover cost basis, fees and accrued opportunity cost. Needs no
  market data: breakeven depends only on the configuration and the date.
`
}

func (c *breakevenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "Path to the configuration file")
	f.StringVar(&c.date, "d", "", "Evaluation date (defaults to today)")
}

func (c *breakevenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		return fail(err)
	}
	asOf, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	if len(cfg.Holdings) == 0 {
		return fail(fmt.Errorf("no holdings configured in %s", defaultConfigFile))
	}

	var rows []renderer.BreakevenRow
	for _, h := range cfg.Holdings {
		costBasis := h.CostBasisTotal(cfg.Currency)
		oc := cfg.CPF.OpportunityCost(costBasis, h.BuyDate, asOf)
		breakeven, err := cfg.Fees.Breakeven(costBasis, oc, h.Quantity())
		if err != nil {
			return fail(err)
		}
		rows = append(rows, renderer.BreakevenRow{
			Holding:         h,
			CostBasisTotal:  costBasis,
			OpportunityCost: oc,
			Breakeven:       breakeven,
			Uplift:          breakeven.Sub(h.CostPerShare(cfg.Currency)).PercentOf(h.CostPerShare(cfg.Currency)),
		})
	}

	printMarkdown(renderer.BreakevenMarkdown(asOf.String(), rows))
	return subcommands.ExitSuccess
}
