package models

import (
	"testing"
	"time"
)

func TestTransactionKind_IsValid(t *testing.T) {
	cases := []struct {
		kind TransactionKind
		want bool
	}{
		{KindIncome, true},
		{KindExpense, true},
		{"", false},
		{"Income", false},
		{"transfer", false},
	}
	for _, tc := range cases {
		if got := tc.kind.IsValid(); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		got, err := ParseDate("2024-03-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year() != 2024 || got.Month() != time.March || got.Day() != 1 {
			t.Fatalf("unexpected date: %v", got)
		}
	})

	t.Run("full timestamp", func(t *testing.T) {
		if _, err := ParseDate("2024-03-01T15:04:05Z"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "01/03/2024", "yesterday", "2024-13-01"} {
			if _, err := ParseDate(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})
}

func TestTransaction_DateValue(t *testing.T) {
	valid := Transaction{Date: "2024-01-02"}
	if valid.DateValue().IsZero() {
		t.Fatal("expected non-zero time for valid date")
	}
	broken := Transaction{Date: "not-a-date"}
	if !broken.DateValue().IsZero() {
		t.Fatal("expected zero time for unparseable date")
	}
}
