package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/identity"
	"github.com/fintrackhq/fintrack/internal/models"
	"github.com/fintrackhq/fintrack/internal/storage"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	logger := common.NewSilentLogger()
	blobs, err := storage.NewFileStore(logger, &common.StorageConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	users := identity.NewStore(logger, blobs)
	if _, err := users.Register(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return NewService(logger, users), "alice"
}

func validInput() AddInput {
	return AddInput{
		Description: "groceries",
		Amount:      "20",
		Kind:        "expense",
		Category:    "Food",
		Date:        "2024-01-02",
	}
}

func TestAdd_AssignsUniqueIDs(t *testing.T) {
	s, user := newTestService(t)
	ctx := context.Background()

	t1, err := s.Add(ctx, user, validInput())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	t2, err := s.Add(ctx, user, validInput())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if t1.ID == "" || t1.ID == t2.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", t1.ID, t2.ID)
	}
	if t1.Amount != 20 || t1.Kind != models.KindExpense {
		t.Fatalf("unexpected transaction: %+v", t1)
	}
}

func TestAdd_InvalidInput(t *testing.T) {
	s, user := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*AddInput)
	}{
		{"empty description", func(in *AddInput) { in.Description = " " }},
		{"empty category", func(in *AddInput) { in.Category = "" }},
		{"negative amount", func(in *AddInput) { in.Amount = "-5" }},
		{"non-numeric amount", func(in *AddInput) { in.Amount = "lots" }},
		{"empty amount", func(in *AddInput) { in.Amount = "" }},
		{"bad kind", func(in *AddInput) { in.Kind = "transfer" }},
		{"empty date", func(in *AddInput) { in.Date = "" }},
		{"bad date", func(in *AddInput) { in.Date = "yesterday" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := s.Add(ctx, user, in); !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}

			// Ledger stays unchanged on rejection
			txns, err := s.List(ctx, user)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(txns) != 0 {
				t.Fatalf("expected unchanged ledger, got %d transactions", len(txns))
			}
		})
	}
}

func TestAddRemove_RoundTrip(t *testing.T) {
	s, user := newTestService(t)
	ctx := context.Background()

	txn, err := s.Add(ctx, user, validInput())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Remove(ctx, user, txn.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	txns, err := s.List(ctx, user)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(txns) != 0 {
		t.Fatalf("expected empty ledger after round trip, got %d", len(txns))
	}
}

func TestRemove_UnknownID(t *testing.T) {
	s, user := newTestService(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, user, validInput()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.Remove(ctx, user, "no-such-id"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	txns, err := s.List(ctx, user)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected unchanged ledger, got %d transactions", len(txns))
	}
}

func TestList_SortedByDateDescending(t *testing.T) {
	s, user := newTestService(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		in := validInput()
		in.Date = date
		if _, err := s.Add(ctx, user, in); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	txns, err := s.List(ctx, user)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"2024-03-01", "2024-02-01", "2024-01-01"}
	for i, date := range want {
		if txns[i].Date != date {
			t.Fatalf("position %d: expected %s, got %s", i, date, txns[i].Date)
		}
	}
}

func TestList_StableTieBreakOnEqualDates(t *testing.T) {
	s, user := newTestService(t)
	ctx := context.Background()

	for _, desc := range []string{"first", "second", "third"} {
		in := validInput()
		in.Description = desc
		if _, err := s.Add(ctx, user, in); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	txns, err := s.List(ctx, user)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	// Equal dates keep insertion order
	want := []string{"first", "second", "third"}
	for i, desc := range want {
		if txns[i].Description != desc {
			t.Fatalf("position %d: expected %s, got %s", i, desc, txns[i].Description)
		}
	}
}

func TestAdd_UnknownUser(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.Add(context.Background(), "ghost", validInput()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"20", 20, true},
		{"0", 0, true},
		{"12.34", 12.34, true},
		{"12,34", 12.34, true},
		{" 2.50 ", 2.5, true},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q: expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
