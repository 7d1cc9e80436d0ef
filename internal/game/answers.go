// Package game implements the checkpoint progress rules: answer matching,
// the per-user phase ladder, and final-assembly location checks.
package game

import (
	"strconv"
	"strings"
)

// Matches reports whether a submitted answer satisfies the canonical one.
// Comparison is case-insensitive. When the canonical answer is numeric the
// submission is also accepted as an integer with hyphens and spaces stripped,
// or spelled out in English ("twenty-one" matches "21").
func Matches(canonical, submitted string) bool {
	canonical = strings.TrimSpace(canonical)
	submitted = strings.TrimSpace(submitted)

	if canonical == "" || submitted == "" {
		return false
	}
	if strings.EqualFold(canonical, submitted) {
		return true
	}

	want, err := strconv.Atoi(canonical)
	if err != nil {
		return false
	}
	got, ok := parseNumber(submitted)
	return ok && got == want
}

var numberUnits = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var numberTens = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// parseNumber interprets a submission as an integer. Digit forms are read
// with hyphens and spaces removed ("2 1" reads as 21); word forms cover zero
// through nine hundred ninety-nine, which is more than any hint needs.
func parseNumber(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	compact := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if n, err := strconv.Atoi(compact); err == nil {
		return n, true
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(words) == 0 {
		return 0, false
	}

	total := 0
	seen := false
	for _, w := range words {
		switch {
		case w == "and":
			// "one hundred and one"
		case w == "hundred":
			if !seen {
				return 0, false
			}
			total *= 100
		default:
			n, ok := numberUnits[w]
			if !ok {
				n, ok = numberTens[w]
			}
			if !ok {
				return 0, false
			}
			total += n
			seen = true
		}
	}

	return total, seen
}
