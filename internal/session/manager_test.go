package session

import (
	"context"
	"testing"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	blobs, err := storage.NewFileStore(common.NewSilentLogger(), &common.StorageConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return NewManager(common.NewSilentLogger(), blobs)
}

func TestRestore_EmptyAtStart(t *testing.T) {
	m := newTestManager(t)

	if username, ok := m.Restore(context.Background()); ok {
		t.Fatalf("expected no session, got %q", username)
	}
}

func TestStartRestoreEnd(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if err := m.Start(ctx, "alice"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	username, ok := m.Restore(ctx)
	if !ok || username != "alice" {
		t.Fatalf("expected restored session 'alice', got %q (ok=%v)", username, ok)
	}

	if err := m.End(ctx); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if username, ok := m.Restore(ctx); ok {
		t.Fatalf("expected no session after End, got %q", username)
	}
}

func TestRestore_VerbatimWithoutValidation(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	// The manager does not consult the identity store; whatever username was
	// persisted comes back as-is.
	if err := m.Start(ctx, "ghost-user"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	username, ok := m.Restore(ctx)
	if !ok || username != "ghost-user" {
		t.Fatalf("expected verbatim restore, got %q (ok=%v)", username, ok)
	}
}

func TestIndependentManagers(t *testing.T) {
	ctx := context.Background()
	m1 := newTestManager(t)
	m2 := newTestManager(t)

	if err := m1.Start(ctx, "alice"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if username, ok := m2.Restore(ctx); ok {
		t.Fatalf("expected isolated sessions, m2 restored %q", username)
	}
}
