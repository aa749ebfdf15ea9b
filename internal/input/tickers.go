// Package input turns raw user text into validated ticker symbols.
package input

import (
	"fmt"
	"strings"

	"MarketCompare/internal/model"
)

// MaxTickers is the number of series a single comparison accepts.
const MaxTickers = 2

// ParseTickers trims and upper-cases raw symbols. Empty or repeated symbols and
// more than MaxTickers entries fail with ErrInvalidInput.
func ParseTickers(raw ...string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no ticker given", model.ErrInvalidInput)
	}
	if len(raw) > MaxTickers {
		return nil, fmt.Errorf("%w: at most %d tickers, got %d", model.ErrInvalidInput, MaxTickers, len(raw))
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		t := strings.ToUpper(strings.TrimSpace(r))
		if t == "" {
			return nil, fmt.Errorf("%w: ticker %d is empty", model.ErrInvalidInput, i+1)
		}
		if !isSymbol(t) {
			return nil, fmt.Errorf("%w: %q is not a ticker symbol", model.ErrInvalidInput, r)
		}
		if seen[t] {
			return nil, fmt.Errorf("%w: duplicate ticker %s", model.ErrInvalidInput, t)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// isSymbol reports whether t only uses A-Z, 0-9 and . ^ = -
// (BRK-B, ^GSPC, EURUSD=X, BMW.XETRA).
func isSymbol(t string) bool {
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '^', r == '=', r == '-':
		default:
			return false
		}
	}
	return true
}

// SplitArgs splits "AAPL MSFT" or "aapl,msft" into fields.
func SplitArgs(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
}
