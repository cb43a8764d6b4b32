package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrackhq/fintrack/internal/common"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(common.NewSilentLogger(), &common.StorageConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBadgerStore_WriteReadRoundTrip(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, "session", map[string]string{"username": "alice"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got map[string]string
	if err := s.Read(ctx, "session", &got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got["username"] != "alice" {
		t.Fatalf("unexpected round trip result: %v", got)
	}
}

func TestBadgerStore_ReadMissingRecord(t *testing.T) {
	s := newTestBadgerStore(t)

	var dest map[string]string
	if err := s.Read(context.Background(), "missing", &dest); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestBadgerStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, "session", map[string]string{"username": "alice"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Delete(ctx, "session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "session"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestNewStore_BackendSelection(t *testing.T) {
	logger := common.NewSilentLogger()

	config := common.NewDefaultConfig()
	config.Storage.Path = t.TempDir()
	config.Storage.Backend = "file"
	if _, err := NewStore(logger, config); err != nil {
		t.Fatalf("file backend failed: %v", err)
	}

	config.Storage.Backend = "bogus"
	if _, err := NewStore(logger, config); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
