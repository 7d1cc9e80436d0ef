package game

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		submitted string
		want      bool
	}{
		{name: "exact match", canonical: "Library", submitted: "Library", want: true},
		{name: "case-insensitive", canonical: "Library", submitted: "LIBRARY", want: true},
		{name: "lowercase submission", canonical: "Library", submitted: "library", want: true},
		{name: "surrounding whitespace", canonical: "C", submitted: "  c  ", want: true},
		{name: "wrong answer", canonical: "Library", submitted: "Cafeteria", want: false},
		{name: "empty submission", canonical: "Library", submitted: "", want: false},
		{name: "empty canonical", canonical: "", submitted: "anything", want: false},

		{name: "digits match digits", canonical: "21", submitted: "21", want: true},
		{name: "digits with space", canonical: "21", submitted: "2 1", want: true},
		{name: "number word", canonical: "21", submitted: "twenty-one", want: true},
		{name: "number word with space", canonical: "21", submitted: "Twenty One", want: true},
		{name: "single digit word", canonical: "3", submitted: "three", want: true},
		{name: "zero", canonical: "0", submitted: "zero", want: true},
		{name: "hundred form", canonical: "101", submitted: "one hundred and one", want: true},
		{name: "wrong number word", canonical: "21", submitted: "twenty-two", want: false},
		{name: "word for non-numeric canonical", canonical: "Library", submitted: "three", want: false},
		{name: "gibberish against number", canonical: "21", submitted: "twenty-banana", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.canonical, tt.submitted); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.canonical, tt.submitted, got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "21", want: 21, wantOK: true},
		{in: "2-1", want: 21, wantOK: true},
		{in: "twenty", want: 20, wantOK: true},
		{in: "twenty-one", want: 21, wantOK: true},
		{in: "ninety nine", want: 99, wantOK: true},
		{in: "three hundred", want: 300, wantOK: true},
		{in: "nine hundred ninety-nine", want: 999, wantOK: true},
		{in: "hundred", wantOK: false},
		{in: "and", wantOK: false},
		{in: "", wantOK: false},
		{in: "banana", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("parseNumber(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
