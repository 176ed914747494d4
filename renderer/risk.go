package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/cpfolio"
	md "github.com/nao1215/markdown"
)

// RiskMarkdown renders the risk report: per-holding metrics, the correlation
// matrix and the portfolio-level aggregation.
func RiskMarkdown(asOf string, r *cpfolio.RiskReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Risk Report on %s", asOf))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Holding", "Weight", "Annual Vol", "Max DD", "VaR 95%", "VaR 99%", "Sharpe", "Sortino"},
	}
	for _, s := range r.Stocks {
		table.Rows = append(table.Rows, []string{
			s.Name,
			fmt.Sprintf("%.1f%%", s.Weight),
			pct(s.AnnualVol),
			pct(s.MaxDrawdown),
			pct(s.VaR95),
			pct(s.VaR99),
			f2(s.Sharpe),
			f2(s.Sortino),
		})
	}
	doc.Table(table)

	for _, s := range r.Stocks {
		if !math.IsNaN(s.MaxDrawdown) && !s.PeakDate.IsZero() {
			doc.PlainText(fmt.Sprintf("%s drawdown: peak %s, trough %s, %d return samples.",
				s.Name, s.PeakDate, s.TroughDate, s.DataPoints))
		}
	}

	if len(r.Symbols) > 1 {
		doc.H2("Return Correlation")
		doc.Table(correlationTable(r))
	}

	if !math.IsNaN(r.Portfolio.AnnualVol) {
		doc.H2("Portfolio Risk")
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Metric", "Value"},
			Rows: [][]string{
				{"Annual Volatility", pct(r.Portfolio.AnnualVol)},
				{"Undiversified Volatility", pct(r.Portfolio.UndiversifiedVol)},
				{"Diversification Benefit", pct(r.Portfolio.Diversification)},
				{"Risk Level", r.Portfolio.Level.String()},
			},
		})
	}

	return doc.String()
}

func correlationTable(r *cpfolio.RiskReport) md.TableSet {
	header := append([]string{""}, r.Symbols...)
	alignment := make([]md.TableAlignment, len(header))
	alignment[0] = md.AlignLeft
	for i := 1; i < len(alignment); i++ {
		alignment[i] = md.AlignRight
	}

	table := md.TableSet{Alignment: alignment, Header: header}
	for i, sym := range r.Symbols {
		row := []string{sym}
		for j := range r.Symbols {
			row = append(row, f2(r.Correlation[i][j]))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// pct formats a percentage value that may be NaN.
func pct(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%.2f%%", v)
}
