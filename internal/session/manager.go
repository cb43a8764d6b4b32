// Package session manages the durable record of the currently authenticated
// username. The manager is an explicit object rather than package-level
// state, so tests can run independent sessions side by side.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/interfaces"
	"github.com/fintrackhq/fintrack/internal/models"
	"github.com/fintrackhq/fintrack/internal/storage"
)

// record is the serialized session slot: zero or one logged-in username.
type record struct {
	Username string `json:"username"`
}

// Manager persists the active session in its own record slot, independent of
// the users record, so a restart restores the login.
type Manager struct {
	blobs  interfaces.BlobStore
	logger *common.Logger
}

// NewManager creates a session manager on top of the given blob store.
func NewManager(logger *common.Logger, blobs interfaces.BlobStore) *Manager {
	return &Manager{blobs: blobs, logger: logger}
}

// Restore reads the persisted session and returns the username verbatim.
// It does not revalidate against the identity store; callers that need a
// live user resolve it themselves. An unreadable record restores nothing.
func (m *Manager) Restore(ctx context.Context) (string, bool) {
	var rec record
	if err := m.blobs.Read(ctx, interfaces.SessionRecord, &rec); err != nil {
		if !errors.Is(err, storage.ErrRecordNotFound) {
			m.logger.Error().Err(err).Msg("Failed to read session record")
		}
		return "", false
	}
	if rec.Username == "" {
		return "", false
	}
	return rec.Username, true
}

// Start persists the username as the active session.
func (m *Manager) Start(ctx context.Context, username string) error {
	if err := m.blobs.Write(ctx, interfaces.SessionRecord, record{Username: username}); err != nil {
		return fmt.Errorf("%w: writing session record: %v", models.ErrPersistence, err)
	}
	m.logger.Debug().Str("username", username).Msg("Session started")
	return nil
}

// End clears the persisted session.
func (m *Manager) End(ctx context.Context) error {
	if err := m.blobs.Delete(ctx, interfaces.SessionRecord); err != nil {
		return fmt.Errorf("%w: clearing session record: %v", models.ErrPersistence, err)
	}
	m.logger.Debug().Msg("Session ended")
	return nil
}
