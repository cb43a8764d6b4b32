package statement

import (
	"testing"

	"github.com/fintrackhq/fintrack/internal/common"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(common.NewSilentLogger())
}

func TestParseText_Rows(t *testing.T) {
	text := `ACME BANK Statement
2024-01-15 Grocery store -42.50
2024-01-16 Monthly salary 2500
2024-01-17 Bus ticket -3,20
Closing balance 2454.30`

	result := newTestParser(t).parseText(text)

	if len(result.Inputs) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(result.Inputs), result.Inputs)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", result.Skipped)
	}

	first := result.Inputs[0]
	if first.Description != "Grocery store" || first.Amount != "42.5" || first.Kind != "expense" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Date != "2024-01-15" || first.Category != "Imported" {
		t.Fatalf("unexpected first row metadata: %+v", first)
	}

	second := result.Inputs[1]
	if second.Kind != "income" || second.Amount != "2500" {
		t.Fatalf("unexpected second row: %+v", second)
	}

	third := result.Inputs[2]
	if third.Kind != "expense" || third.Amount != "3.2" {
		t.Fatalf("unexpected third row: %+v", third)
	}
}

func TestParseText_SkipsNoise(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank lines", "\n\n\n"},
		{"no amount", "2024-01-15 Grocery store"},
		{"no date", "Grocery store -42.50"},
		{"bad date format", "15/01/2024 Grocery store -42.50"},
		{"amount mid line", "2024-01-15 -42.50 Grocery store"},
	}

	parser := newTestParser(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := parser.parseText(tc.text)
			if len(result.Inputs) != 0 {
				t.Fatalf("expected no rows, got %+v", result.Inputs)
			}
		})
	}
}

func TestParse_RejectsNonPDF(t *testing.T) {
	if _, err := newTestParser(t).Parse([]byte("not a pdf")); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}
