package pricing

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingFloatRe = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)
	leadingIntRe   = regexp.MustCompile(`^[-+]?\d+`)
	nonNumericRe   = regexp.MustCompile(`[^0-9.\-]+`)
)

// parseLeadingFloat reads the longest numeric prefix of s, the way a lenient form field does.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloatRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseLeadingInt(s string) (int, bool) {
	m := leadingIntRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if errors.Is(err, strconv.ErrRange) {
		// слишком длинное число насыщается, а не обнуляется
		if strings.HasPrefix(m, "-") {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseAmount extracts a money amount from free text such as "2,49 MAD".
// Comma separators become dots, everything but digits, dots and minus is dropped.
// Unparseable input yields 0.
func ParseAmount(s string) float64 {
	cleaned := nonNumericRe.ReplaceAllString(strings.ReplaceAll(s, ",", "."), "")
	v, ok := parseLeadingFloat(cleaned)
	if !ok {
		return 0
	}
	return v
}
