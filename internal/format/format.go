// Package format renders balances and rates into the display strings the
// Acrobits client shows verbatim.
package format

import (
	"strconv"
	"strings"
	"unicode"
)

// Money renders amount with exactly two fractional digits prefixed by the
// currency token. An empty currency falls back to defaultCurrency; when that is
// empty too the result carries no leading space.
func Money(amount float64, currency, defaultCurrency string) string {
	if currency == "" {
		currency = defaultCurrency
	}
	s := currency + " " + strconv.FormatFloat(amount, 'f', 2, 64)
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// Rate renders a per-call price as "<price><currency> <specification>", for
// example "1¢ min.". An empty specification falls back to defaultSpecification.
func Rate(price float64, specification, defaultSpecification, currency string) string {
	if specification == "" {
		specification = defaultSpecification
	}
	s := Compact(price) + currency + " " + specification
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// MessageRate renders a per-message price as "<price><currency>".
func MessageRate(price float64, currency string) string {
	return Compact(price) + currency
}

// Compact returns the shortest decimal representation that parses back to f,
// without an exponent and without trailing zeros.
func Compact(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
