package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/cpfolio"
	md "github.com/nao1215/markdown"
)

// ReportExtras carries the optional enrichment sections of the report:
// valuation snapshots and news headlines keyed by symbol. Nil extras (or a
// symbol absent from a map) render the core report unchanged.
type ReportExtras struct {
	Fundamentals map[string]cpfolio.Fundamentals
	News         map[string][]cpfolio.Headline
}

// ReportMarkdown renders the full daily report: market context, the holdings
// table, portfolio totals and a sell-today detail card per holding, enriched
// with valuation and headlines when extras carry them.
func ReportMarkdown(r *cpfolio.Report, macro cpfolio.MacroSnapshot, extras *ReportExtras) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("CPF Portfolio Report on %s", r.AsOf))

	if summary := macro.Summary(); summary != "" {
		doc.PlainText(md.Italic(summary))
	}

	doc.Table(holdingsTable(r))

	doc.H2("Portfolio Totals")
	doc.Table(totalsTable(r))

	for _, e := range r.Entries {
		if e.Record == nil {
			continue
		}
		detailCard(doc, e.Record)
		if extras == nil {
			continue
		}
		if f, ok := extras.Fundamentals[e.Holding.Symbol]; ok {
			valuationCard(doc, f)
		}
		if headlines := extras.News[e.Holding.Symbol]; len(headlines) > 0 {
			newsSection(doc, headlines)
		}
	}

	return doc.String()
}

// SummaryMarkdown renders the compact version pushed to WeChat: the holdings
// table and the bottom line, nothing else.
func SummaryMarkdown(r *cpfolio.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("CPF Portfolio on %s", r.AsOf))
	doc.Table(holdingsTable(r))
	doc.PlainText(fmt.Sprintf("Net P&L %s (%s), incl. dividends %s",
		r.TotalNetPnL.SignedString(), r.NetReturn().SignedString(), r.NetWithDividends().SignedString()))

	return doc.String()
}

func holdingsTable(r *cpfolio.Report) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Holding", "Price", "Day", "Breakeven", "Paper P&L", "Net P&L", "Suggestion"},
	}
	for _, e := range r.Entries {
		if e.Record == nil {
			table.Rows = append(table.Rows, []string{
				e.Holding.DisplayName(), "—", "—", "—", "—", "—", "unavailable",
			})
			continue
		}
		rec := e.Record
		table.Rows = append(table.Rows, []string{
			rec.Holding.DisplayName(),
			rec.Quote.Price.String(),
			rec.Quote.ChangePercent().SignedString(),
			rec.Breakeven.String(),
			rec.PaperPnL.SignedString(),
			rec.NetPnL.SignedString(),
			rec.Suggestion.String(),
		})
	}
	return table
}

func totalsTable(r *cpfolio.Report) md.TableSet {
	return md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Total", "Value"},
		Rows: [][]string{
			{"Cost Basis", r.TotalCostBasis.String()},
			{"Market Value", r.TotalMarketValue.String()},
			{"Paper P&L", fmt.Sprintf("%s (%s)", r.TotalPaperPnL.SignedString(), r.PaperReturn().SignedString())},
			{"Transaction Fees", r.TotalFees.Neg().SignedString()},
			{"Opportunity Cost", r.TotalOpportunity.Neg().SignedString()},
			{"Net P&L", fmt.Sprintf("%s (%s)", r.TotalNetPnL.SignedString(), r.NetReturn().SignedString())},
			{"Dividends Received", r.TotalDividends.String()},
			{"Net incl. Dividends", r.NetWithDividends().SignedString()},
		},
	}
}

// detailCard renders the sell-today analysis of one holding: what a full
// sale at the current price actually leaves after every cost.
func detailCard(doc *md.Markdown, rec *cpfolio.PositionRecord) {
	h := rec.Holding
	doc.H2(fmt.Sprintf("%s (%s)", h.DisplayName(), h.Symbol))
	doc.PlainText(fmt.Sprintf("%d shares bought %s at %s, held %d days.",
		h.Shares, h.BuyDate, rec.CostBasisTotal.Div(h.Quantity()), rec.DaysHeld))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Sell Today", "Value"},
		Rows: [][]string{
			{"Market Value", rec.MarketValue.String()},
			{"Cost Basis", rec.CostBasisTotal.String()},
			{"Paper P&L", fmt.Sprintf("%s (%s)", rec.PaperPnL.SignedString(), rec.PaperReturn().SignedString())},
			{"Commission", rec.Fee.Commission.Neg().SignedString()},
			{"Clearing Fee", rec.Fee.Clearing.Neg().SignedString()},
			{"Trading Fee", rec.Fee.Trading.Neg().SignedString()},
			{"Settlement Fee", rec.Fee.Settlement.Neg().SignedString()},
			{"Opportunity Cost", rec.OpportunityCost.Neg().SignedString()},
			{"Net P&L", fmt.Sprintf("%s (%s)", rec.NetPnL.SignedString(), rec.NetReturn().SignedString())},
			{"Dividends Received", rec.Dividends.String()},
			{"Breakeven Price", rec.Breakeven.String()},
			{"Target Price", fmt.Sprintf("%s (%s away)", rec.TargetPrice, rec.TargetGap().SignedString())},
		},
	})
}

// valuationCard renders the fundamentals of one holding against its sector
// benchmark. Metrics Yahoo did not report show as a dash and stay Unrated.
func valuationCard(doc *md.Markdown, f cpfolio.Fundamentals) {
	doc.H3(fmt.Sprintf("Valuation (%s sector)", f.Sector))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Metric", "Value", "Sector Avg", "Rating"},
		Rows: [][]string{
			{"P/E", f2(f.PE), f2(f.Benchmark.PE), f.PERating.String()},
			{"P/B", f2(f.PB), f2(f.Benchmark.PB), f.PBRating.String()},
			{"Dividend Yield", pct(f.DivYield), pct(f.Benchmark.DivYield), f.DivRating.String()},
			{"ROE", pct(f.ROE), pct(f.Benchmark.ROE), ""},
			{"Overall", "", "", f.Overall.String()},
		},
	})
	if !math.IsNaN(f.Week52Pos) {
		doc.PlainText(fmt.Sprintf("52-week range %s to %s, now at %s of the range.",
			f2(f.Week52Low), f2(f.Week52High), pct(f.Week52Pos)))
	}
}

// newsSection renders recent headlines for one holding as a bullet list,
// each tagged with its keyword sentiment.
func newsSection(doc *md.Markdown, headlines []cpfolio.Headline) {
	doc.H3("Recent News")
	items := make([]string, 0, len(headlines))
	for _, h := range headlines {
		line := fmt.Sprintf("[%s] %s", h.Sentiment, md.Link(h.Title, h.Link))
		if h.Source != "" {
			line += fmt.Sprintf(" (%s)", h.Source)
		}
		items = append(items, line)
	}
	doc.BulletList(items...)
}
