package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f with the shortest decimal expansion that parses back
// to f, keeping at least one decimal digit: 1 renders as "1.0".
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', decimalCount(f), 64)
}

// decimalCount is the number of fractional digits of the shortest round-trip
// text of f, floored at one. Non-finite values report the floor.
func decimalCount(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	dot := strings.IndexByte(text, '.')
	if dot < 0 {
		return 1
	}
	return max(1, len(text)-dot-1)
}
