// Package ledger implements add/remove/list over one user's transaction
// collection. All mutations persist through the identity store's wholesale
// ledger replacement.
package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/identity"
	"github.com/fintrackhq/fintrack/internal/models"
)

// Service scopes ledger operations to a username per call.
type Service struct {
	users  *identity.Store
	logger *common.Logger
}

// NewService creates a ledger service over the identity store.
func NewService(logger *common.Logger, users *identity.Store) *Service {
	return &Service{users: users, logger: logger}
}

// AddInput is the raw form of a new transaction. Amount arrives as text and
// must parse as a non-negative decimal.
type AddInput struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// ParseAmount parses a decimal amount string. Accepts both dot and comma
// decimal separators; rejects negatives, NaN, and infinities.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", models.ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount '%s' is not a number", models.ErrInvalidInput, s)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: amount must be non-negative", models.ErrInvalidInput)
	}
	return v, nil
}

// validate checks the input and returns the parsed amount.
func (in *AddInput) validate() (float64, error) {
	if strings.TrimSpace(in.Description) == "" {
		return 0, fmt.Errorf("%w: description is required", models.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return 0, fmt.Errorf("%w: category is required", models.ErrInvalidInput)
	}
	if !models.TransactionKind(in.Kind).IsValid() {
		return 0, fmt.Errorf("%w: kind must be 'income' or 'expense'", models.ErrInvalidInput)
	}
	if in.Date == "" {
		return 0, fmt.Errorf("%w: date is required", models.ErrInvalidInput)
	}
	if _, err := models.ParseDate(in.Date); err != nil {
		return 0, fmt.Errorf("%w: date '%s' is not a valid ISO 8601 date", models.ErrInvalidInput, in.Date)
	}
	return ParseAmount(in.Amount)
}

// Add validates the input, assigns a fresh id, appends the transaction to
// the user's ledger, and persists it. The ledger is unchanged on any error.
func (s *Service) Add(ctx context.Context, username string, in AddInput) (*models.Transaction, error) {
	amount, err := in.validate()
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	txn := models.Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Kind:        models.TransactionKind(in.Kind),
		Date:        in.Date,
		Category:    strings.TrimSpace(in.Category),
	}

	updated := append(user.Transactions, txn)
	if err := s.users.UpdateTransactions(ctx, username, updated); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("username", username).
		Str("id", txn.ID).
		Str("kind", string(txn.Kind)).
		Msg("Transaction added")
	return &txn, nil
}

// Remove deletes the transaction with the given id. Returns ErrNotFound and
// leaves the ledger unchanged when no such id exists.
func (s *Service) Remove(ctx context.Context, username, id string) error {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return err
	}

	idx := -1
	for i := range user.Transactions {
		if user.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("transaction '%s': %w", id, models.ErrNotFound)
	}

	updated := append(user.Transactions[:idx:idx], user.Transactions[idx+1:]...)
	if err := s.users.UpdateTransactions(ctx, username, updated); err != nil {
		return err
	}

	s.logger.Debug().Str("username", username).Str("id", id).Msg("Transaction removed")
	return nil
}

// List returns the user's transactions sorted by date descending. Equal
// dates keep their insertion order (stable sort), which is the documented
// tie-break since dates alone are not unique.
func (s *Service) List(ctx context.Context, username string) ([]models.Transaction, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	txns := make([]models.Transaction, len(user.Transactions))
	copy(txns, user.Transactions)

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].DateValue().After(txns[j].DateValue())
	})
	return txns, nil
}
