package cpfolio

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// MacroIndex is one market-context gauge: latest value and day change.
type MacroIndex struct {
	Symbol string
	Name   string
	Value  float64
	Change float64
}

// ChangePercent is the day change relative to the previous close.
func (m MacroIndex) ChangePercent() float64 {
	prev := m.Value - m.Change
	if prev == 0 {
		return 0
	}
	return m.Change / prev * 100
}

// MacroSnapshot is the market context of the report: the SGX benchmark, the
// fear index and the US 10Y yield. Any gauge may be nil when its fetch
// failed; the report then simply omits it.
type MacroSnapshot struct {
	STI   *MacroIndex // ^STI, Straits Times Index
	VIX   *MacroIndex // ^VIX, CBOE volatility index
	US10Y *MacroIndex // ^TNX, US 10-year treasury yield
}

const chartBase = "https://query1.finance.yahoo.com"

// FetchMacro probes the three context gauges. Failures degrade to nil
// entries, never to an error: the macro section is decoration, not data the
// evaluation depends on.
func FetchMacro(client *http.Client) MacroSnapshot {
	return fetchMacro(client, chartBase)
}

func fetchMacro(client *http.Client, base string) MacroSnapshot {
	return MacroSnapshot{
		STI:   fetchIndex(client, base, "^STI", "STI"),
		VIX:   fetchIndex(client, base, "^VIX", "VIX"),
		US10Y: fetchIndex(client, base, "^TNX", "US 10Y"),
	}
}

// fetchIndex probes the chart-API meta fields with jsonpath rather than
// modeling the whole response: two numbers is all the snapshot needs.
func fetchIndex(client *http.Client, base, symbol, name string) *MacroIndex {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", base, symbol)
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		log.Printf("warning, macro fetch %s failed (ignored): %v", symbol, err)
		return nil
	}
	value, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		log.Printf("warning, macro fetch %s: %v", symbol, err)
		return nil
	}
	prev, err := jsonFloat(jobj, "$.chart.result[0].meta.chartPreviousClose")
	if err != nil {
		log.Printf("warning, macro fetch %s: %v", symbol, err)
		return nil
	}
	return &MacroIndex{Symbol: symbol, Name: name, Value: value, Change: value - prev}
}

func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	f, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("jsonpath %q: got %T, want float64", path, jval)
	}
	return f, nil
}

// VIXStatus reads the fear gauge: calm under 20, caution under 30, panic
// beyond.
func (s MacroSnapshot) VIXStatus() string {
	if s.VIX == nil {
		return ""
	}
	switch {
	case s.VIX.Value >= 30:
		return "panic"
	case s.VIX.Value >= 20:
		return "caution"
	default:
		return "calm"
	}
}

// Summary renders the snapshot as a one-line market context, skipping the
// gauges that failed to fetch.
func (s MacroSnapshot) Summary() string {
	var parts []string
	if s.STI != nil {
		parts = append(parts, fmt.Sprintf("STI %.2f (%+.2f%%)", s.STI.Value, s.STI.ChangePercent()))
	}
	if s.VIX != nil {
		parts = append(parts, fmt.Sprintf("VIX %.1f (%s)", s.VIX.Value, s.VIXStatus()))
	}
	if s.US10Y != nil {
		parts = append(parts, fmt.Sprintf("US 10Y %.2f%%", s.US10Y.Value))
	}
	return strings.Join(parts, " | ")
}
