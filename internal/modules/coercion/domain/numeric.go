package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// numericLiteral accepts an optionally signed integer or decimal with an
// optional exponent. Hex, underscores, inf and nan are rejected.
var numericLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// maxInt64Digits bounds the magnitude checked before asking apd for an int64,
// so literals like "1e999999" fail fast instead of being expanded.
const maxInt64Digits = 19

func numericText(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, numericLiteral.MatchString(trimmed)
}

func parseFloatLiteral(s string) (float64, bool) {
	text, ok := numericText(s)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseIntegerLiteral evaluates the literal exactly: "5.0" and "1e3" are
// integral, "5.5" and "1.00000000000000001" are not.
func parseIntegerLiteral(s string) (int64, bool) {
	text, ok := numericText(s)
	if !ok {
		return 0, false
	}
	d, _, err := apd.NewFromString(canonicalLiteral(text))
	if err != nil || d.Form != apd.Finite {
		return 0, false
	}
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	if !frac.IsZero() {
		return 0, false
	}
	if integ.IsZero() {
		return 0, true
	}
	if integ.NumDigits()+int64(integ.Exponent) > maxInt64Digits {
		return 0, false
	}
	n, err := integ.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// canonicalLiteral drops a leading plus and completes bare decimal points
// ("5." and ".5") so the literal is in apd's grammar.
func canonicalLiteral(text string) string {
	text = strings.TrimPrefix(text, "+")
	mantissa, exponent := text, ""
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		mantissa, exponent = text[:i], text[i:]
	}
	sign := ""
	if strings.HasPrefix(mantissa, "-") {
		sign, mantissa = "-", mantissa[1:]
	}
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if strings.HasSuffix(mantissa, ".") {
		mantissa += "0"
	}
	return sign + mantissa + exponent
}
