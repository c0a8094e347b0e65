package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	innerSpace        = regexp.MustCompile(`\s+`)
	thousandsDot      = regexp.MustCompile(`\.(\d{3})\b`)
	decimalComma      = regexp.MustCompile(`,(\d{2,})`)
	trailingThousands = regexp.MustCompile(`\.(\d{3})$`)
)

// ParseLooseNumber parses a cell value that may use Latin thousands/decimal
// conventions ("1.234,56") or plain decimal notation. Returns NaN when the
// value does not resolve to a finite number.
//
// The replacement order is load-bearing and must not change: a literal dot
// followed by exactly three digits is always treated as a thousands
// separator, so "123.456" parses as 123456, never 123.456. Existing uploads
// depend on this reading.
func ParseLooseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = innerSpace.ReplaceAllString(s, "")
	if s == "" {
		return math.NaN()
	}

	s = thousandsDot.ReplaceAllString(s, "$1")
	s = decimalComma.ReplaceAllString(s, ".$1")
	s = trailingThousands.ReplaceAllString(s, "$1")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// ParseDayCount parses a day-count cell. Returns nil when the value is not a
// finite number; fractional values are truncated toward zero.
func ParseDayCount(raw string) *int32 {
	v := ParseLooseNumber(raw)
	if math.IsNaN(v) {
		return nil
	}
	d := int32(v)
	return &d
}
