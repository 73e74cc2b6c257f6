// Package roman converts between Roman numerals and integers. Page numbers
// in book front matter are almost always lowercase Roman numerals, so
// FromInt produces canonical lowercase forms.
package roman

import "strings"

var digitValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

var intDigits = []struct {
	value int
	digit string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// FromInt returns the canonical lowercase Roman numeral for n, or "" when
// n is outside the representable range 1-3999.
func FromInt(n int) string {
	if n < 1 || n > 3999 {
		return ""
	}
	var sb strings.Builder
	for _, d := range intDigits {
		for n >= d.value {
			sb.WriteString(d.digit)
			n -= d.value
		}
	}
	return sb.String()
}

// ToInt parses a Roman numeral, accepting either case. It returns the value
// and true, or 0 and false when s contains non-Roman characters or is empty.
// Subtractive forms are handled by the usual right-to-left scan; permissive
// inputs like "iiii" parse to their additive value, matching what OCR tends
// to produce.
func ToInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	s = strings.ToLower(s)

	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		value, ok := digitValues[s[i]]
		if !ok {
			return 0, false
		}
		if value >= prev {
			total += value
		} else {
			total -= value
		}
		prev = value
	}
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// IsNumeral reports whether s consists only of Roman numeral characters
// and parses to a positive value.
func IsNumeral(s string) bool {
	_, ok := ToInt(s)
	return ok
}
