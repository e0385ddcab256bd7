package validation

import (
	"math"
	"regexp"
	"strings"
)

// Ticker symbols: letters, digits, dots and hyphens (e.g. AAPL, BRK.B, BTC-USD).
var symbolRe = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,12}$`)

// IsPositiveAmount reports whether v is a finite number strictly greater
// than zero. Quantities and purchase prices must pass this at creation and
// on every edit.
func IsPositiveAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// IsNonNegativeAmount reports whether v is a finite number >= 0.
// Current prices may legitimately be zero (unknown/unpriced).
func IsNonNegativeAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func IsValidSymbol(symbol string) bool {
	return symbolRe.MatchString(strings.TrimSpace(symbol))
}
