// Package numeric converts loosely formatted numeric text from CSV cells
// into exact decimal values. Upstream feeds are assumed dirty, so parsing
// is best-effort: anything that cannot be read becomes the caller's
// default rather than an error.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseOutcome carries the parsed value along with whether the default was
// substituted. Callers that only care about the value can use Parse.
type ParseOutcome struct {
	Value       decimal.Decimal
	UsedDefault bool
}

// ParseDecimal cleans and parses text into a decimal. Whitespace and
// thousands-separator commas are stripped. Empty input or input that is
// still non-numeric after cleaning yields the default.
func ParseDecimal(text string, def decimal.Decimal) ParseOutcome {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if cleaned == "" {
		return ParseOutcome{Value: def, UsedDefault: true}
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return ParseOutcome{Value: def, UsedDefault: true}
	}

	return ParseOutcome{Value: value}
}

// Parse is the value-only form of ParseDecimal.
func Parse(text string, def decimal.Decimal) decimal.Decimal {
	return ParseDecimal(text, def).Value
}
