package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cpfolio"
	md "github.com/nao1215/markdown"
)

// SignalsMarkdown renders the technical readings, one row per holding plus a
// short indicator card per signal.
func SignalsMarkdown(asOf string, signals []cpfolio.Signal, skipped []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Technical Signals on %s", asOf))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Symbol", "Price", "RSI14", "Trend", "MACD", "Score", "Signal"},
	}
	for _, s := range signals {
		table.Rows = append(table.Rows, []string{
			s.Symbol,
			f2(s.Price),
			f2(s.RSI14),
			s.Trend.String(),
			macdStatus(s),
			fmt.Sprintf("%d", s.Score),
			s.Label.String(),
		})
	}
	doc.Table(table)

	for _, sym := range skipped {
		doc.PlainText(fmt.Sprintf("%s: not enough history for a signal.", sym))
	}

	for _, s := range signals {
		signalCard(doc, s)
	}

	return doc.String()
}

func macdStatus(s cpfolio.Signal) string {
	switch s.Cross {
	case cpfolio.GoldenCross, cpfolio.DeathCross:
		return fmt.Sprintf("%s (%dd ago)", s.Cross, s.CrossDaysAgo)
	}
	if s.Histogram > 0 {
		return "Bullish run"
	}
	return "Bearish run"
}

func signalCard(doc *md.Markdown, s cpfolio.Signal) {
	doc.H2(s.Symbol)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Indicator", "Value"},
		Rows: [][]string{
			{"MA 5 / 10 / 20", fmt.Sprintf("%s / %s / %s", f2(s.MA5), f2(s.MA10), f2(s.MA20))},
			{"MA20 Deviation", signedPct(s.MA20Dev)},
			{"RSI 6 / 14", fmt.Sprintf("%s / %s", f2(s.RSI6), f2(s.RSI14))},
			{"MACD DIF / DEA", fmt.Sprintf("%s / %s", signed2(s.DIF), signed2(s.DEA))},
			{"Bollinger", fmt.Sprintf("%s / %s / %s", f2(s.BollLower), f2(s.BollMid), f2(s.BollUpper))},
			{"Band Position", f2(s.BollPosition)},
			{"Volume Ratio", f2(s.VolumeRatio)},
		},
	})
}
