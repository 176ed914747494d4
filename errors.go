package cpfolio

import "errors"

// Sentinel errors for the evaluation engine. Call sites wrap them with
// fmt.Errorf("...: %w", err) so callers can branch with errors.Is.

// Input and configuration errors.
var (
	// ErrInvalidInput reports a non-positive quantity, price or notional.
	// It is a caller bug and aborts the offending holding's evaluation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDateRange reports a buy date after the evaluation date.
	// It is a configuration fault, not a runtime fault: the opportunity
	// cost is clamped to zero and a warning is logged.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Price source errors. Both are recoverable at report level: the holding is
// marked unavailable and excluded from the aggregates.
var (
	// ErrMissingQuote reports that no quote matched a holding's symbol.
	ErrMissingQuote = errors.New("missing quote")

	// ErrPriceUnavailable reports that the price source could not deliver.
	ErrPriceUnavailable = errors.New("price unavailable")
)
