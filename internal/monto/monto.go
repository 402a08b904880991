// Package monto normalizes and parses the amount strings typed in the
// mobile client. Depending on the device keyboard locale the decimal
// separator may arrive as a comma; everything downstream works with
// decimal.Decimal, never binary floats.
//
// Nothing here panics or returns an error: invalid input is signaled with
// an ok bool that callers must check. Range validation (rejecting zero or
// negative amounts) is the caller's job, not this package's.
package monto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalizar replaces every comma with a period. No other transformation.
func Normalizar(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// Parse normalizes and parses s. ok is false when the trimmed input is
// empty or not a valid number. Negative and zero amounts parse fine.
func Parse(s string) (decimal.Decimal, bool) {
	limpio := strings.TrimSpace(Normalizar(s))
	if limpio == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(limpio)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseODefecto parses s, substituting def when the input is invalid.
func ParseODefecto(s string, def decimal.Decimal) decimal.Decimal {
	if d, ok := Parse(s); ok {
		return d
	}
	return def
}

// EsValido reports whether Parse would succeed on s.
func EsValido(s string) bool {
	_, ok := Parse(s)
	return ok
}
