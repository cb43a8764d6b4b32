// Package identity implements the durable store of registered users and
// their ledgers, persisted as a single users record.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/interfaces"
	"github.com/fintrackhq/fintrack/internal/models"
	"github.com/fintrackhq/fintrack/internal/storage"
)

// bcryptCost matches the cost used across the stack.
const bcryptCost = 10

// Store manages user accounts over the blob persistence surface.
// Every mutation is a read-modify-write of the whole users record, so a
// mutex serializes mutations; the record on disk is always a complete,
// consistent snapshot.
type Store struct {
	blobs  interfaces.BlobStore
	logger *common.Logger
	mu     sync.Mutex
}

// NewStore creates an identity store on top of the given blob store.
func NewStore(logger *common.Logger, blobs interfaces.BlobStore) *Store {
	return &Store{
		blobs:  blobs,
		logger: logger,
	}
}

// loadUsers reads the users record. An unreadable or absent record is
// treated as an empty store (fail-open) and logged; callers never see a
// read error.
func (s *Store) loadUsers(ctx context.Context) []models.User {
	var users []models.User
	if err := s.blobs.Read(ctx, interfaces.UsersRecord, &users); err != nil {
		if !errors.Is(err, storage.ErrRecordNotFound) {
			s.logger.Error().Err(err).Msg("Failed to read users record, treating store as empty")
		}
		return nil
	}
	return users
}

// saveUsers replaces the users record wholesale.
func (s *Store) saveUsers(ctx context.Context, users []models.User) error {
	if err := s.blobs.Write(ctx, interfaces.UsersRecord, users); err != nil {
		return fmt.Errorf("%w: writing users record: %v", models.ErrPersistence, err)
	}
	return nil
}

// findUser returns the index of the case-insensitive username match, or -1.
func findUser(users []models.User, username string) int {
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return i
		}
	}
	return -1
}

// Register creates a new user with an empty ledger and persists the store.
// The secret is stored as a bcrypt hash, never plaintext.
func (s *Store) Register(ctx context.Context, username, secret string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: username and secret are required", models.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers(ctx)
	if findUser(users, username) >= 0 {
		return nil, fmt.Errorf("%w: '%s'", models.ErrDuplicateUsername, username)
	}

	secretBytes := []byte(secret)
	if len(secretBytes) > 72 {
		secretBytes = secretBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(secretBytes, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Transactions: []models.Transaction{},
		CreatedAt:    time.Now(),
	}

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("User registered")
	return &user, nil
}

// Authenticate verifies a username (any casing) and secret pair, returning
// the stored user on success.
func (s *Store) Authenticate(ctx context.Context, username, secret string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: username and secret are required", models.ErrInvalidInput)
	}

	users := s.loadUsers(ctx)
	idx := findUser(users, username)
	if idx < 0 {
		return nil, models.ErrAuthenticationFailed
	}

	secretBytes := []byte(secret)
	if len(secretBytes) > 72 {
		secretBytes = secretBytes[:72]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users[idx].PasswordHash), secretBytes); err != nil {
		return nil, models.ErrAuthenticationFailed
	}

	user := users[idx]
	return &user, nil
}

// Get returns the user matching the username case-insensitively.
func (s *Store) Get(ctx context.Context, username string) (*models.User, error) {
	users := s.loadUsers(ctx)
	idx := findUser(users, username)
	if idx < 0 {
		return nil, fmt.Errorf("user '%s': %w", username, models.ErrNotFound)
	}
	user := users[idx]
	return &user, nil
}

// UpdateTransactions replaces the named user's ledger wholesale and persists
// the store. In-memory state is only adopted once the write succeeds.
func (s *Store) UpdateTransactions(ctx context.Context, username string, txns []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers(ctx)
	idx := findUser(users, username)
	if idx < 0 {
		return fmt.Errorf("user '%s': %w", username, models.ErrNotFound)
	}

	updated := make([]models.Transaction, len(txns))
	copy(updated, txns)
	users[idx].Transactions = updated
	users[idx].ModifiedAt = time.Now()

	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	s.logger.Debug().
		Str("username", users[idx].Username).
		Int("transactions", len(updated)).
		Msg("Ledger updated")
	return nil
}
