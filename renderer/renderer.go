// Package renderer turns evaluation results into markdown documents. It owns
// presentation only: every number it prints was computed by the cpfolio
// package and arrives through the statically typed record schema.
package renderer

import (
	"fmt"
	"math"
)

// f2 formats a float with two decimals, or an em dash when the metric could
// not be computed.
func f2(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%.2f", v)
}

// signed2 is f2 with an explicit sign.
func signed2(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%+.2f", v)
}

// signedPct formats a percentage with an explicit sign.
func signedPct(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%+.2f%%", v)
}
