package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cpfolio"
	md "github.com/nao1215/markdown"
)

// FeesMarkdown renders the itemized transaction cost of one notional.
func FeesMarkdown(notional cpfolio.Money, b cpfolio.FeeBreakdown) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transaction Cost on %s", notional))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Fee", "Amount"},
		Rows: [][]string{
			{"Commission", b.Commission.String()},
			{"Clearing Fee", b.Clearing.String()},
			{"Trading Fee", b.Trading.String()},
			{"Settlement Fee", b.Settlement.String()},
			{md.Bold("Total"), md.Bold(b.Total().String())},
		},
	})

	return doc.String()
}

// BreakevenRow is one holding's breakeven solve, ready to print.
type BreakevenRow struct {
	Holding         cpfolio.Holding
	CostBasisTotal  cpfolio.Money
	OpportunityCost cpfolio.Money
	Breakeven       cpfolio.Money
	Uplift          cpfolio.Percent // breakeven over cost per share
}

// BreakevenMarkdown renders the breakeven table: the price each holding must
// reach before a sale stops losing money.
func BreakevenMarkdown(asOf string, rows []BreakevenRow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Breakeven Prices on %s", asOf))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Holding", "Shares", "Cost Basis", "Opportunity Cost", "Breakeven", "Uplift"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Holding.DisplayName(),
			fmt.Sprintf("%d", r.Holding.Shares),
			r.CostBasisTotal.String(),
			r.OpportunityCost.String(),
			r.Breakeven.String(),
			r.Uplift.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
