package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"  hello  ", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"привет мир", 7, "прив..."},
		{"x", 0, "x"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"three_months": "Three Months",
		"week":         "Week",
		"":             "",
		"HALF_year":    "Half Year",
		"éclair_ünit":  "Éclair Ünit",
		"день":         "День",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}
