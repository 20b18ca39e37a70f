package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPrice is returned by ParseCents for malformed or negative
// price strings.
var ErrInvalidPrice = errors.New("invalid price")

// ParseCents converts a decimal price string such as "123.45" or "99"
// into an integer number of cents. At most two fractional digits are
// accepted; a third digit is a client error, not something to round
// silently. Negative prices are rejected.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidPrice
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" || len(fracPart) > 2 {
		return 0, ErrInvalidPrice
	}
	var cents int64
	for i := 0; i < len(intPart); i++ {
		ch := intPart[i]
		if ch < '0' || ch > '9' {
			return 0, ErrInvalidPrice
		}
		cents = cents*10 + int64(ch-'0')
		if cents > 1<<53 { // well past any realistic part price
			return 0, ErrInvalidPrice
		}
	}
	cents *= 100
	// Pad "5" to "50" so "1.5" means one and a half units.
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	for i := 0; i < 2; i++ {
		ch := fracPart[i]
		if ch < '0' || ch > '9' {
			return 0, ErrInvalidPrice
		}
	}
	cents += int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
	return cents, nil
}

// FormatCents renders a cent amount with exactly two fractional
// digits, e.g. 12345 -> "123.45".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
