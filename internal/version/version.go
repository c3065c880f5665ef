// Package version compares dot-separated release versions.
package version

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const components = 3

// decimal is a plain base-10 literal. ParseFloat alone would also take
// "inf", "nan" and hex floats.
var decimal = regexp.MustCompile(`^[+-]?[0-9]+([eE][+-]?[0-9]+)?$`)

// IsNewer reports whether b is a later release than a, comparing the first
// three dot-separated components numerically. A missing or non-numeric
// component never decides the comparison; equal versions return false.
func IsNewer(a, b string) bool {
	left, right := parse(a), parse(b)
	for i := 0; i < components; i++ {
		if left[i] < right[i] {
			return true
		}
		if left[i] > right[i] {
			return false
		}
	}
	return false
}

// parse splits v into components; NaN marks a missing or unreadable one.
func parse(v string) [components]float64 {
	var out [components]float64
	parts := strings.Split(v, ".")
	for i := range out {
		if i >= len(parts) {
			out[i] = math.NaN()
			continue
		}
		out[i] = number(parts[i])
	}
	return out
}

func number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !decimal.MatchString(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
