package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/models"
)

// newTestFileStore creates a FileStore with a temp directory and default 3 versions.
func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(common.NewSilentLogger(), &common.StorageConfig{
		Path:     t.TempDir(),
		Versions: 3,
	})
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return fs
}

func TestFileStore_BaseDirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "path")
	_, err := NewFileStore(common.NewSilentLogger(), &common.StorageConfig{Path: dir})
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected base directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected base path to be a directory")
	}
}

func TestFileStore_WriteReadRoundTrip(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	users := []models.User{
		{Username: "alice", PasswordHash: "h1", Transactions: []models.Transaction{}},
		{Username: "bob", PasswordHash: "h2", Transactions: []models.Transaction{}},
	}
	if err := fs.Write(ctx, "users", users); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got []models.User
	if err := fs.Read(ctx, "users", &got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 2 || got[0].Username != "alice" || got[1].Username != "bob" {
		t.Fatalf("unexpected round trip result: %+v", got)
	}
}

func TestFileStore_ReadMissingRecord(t *testing.T) {
	fs := newTestFileStore(t)

	var dest []models.User
	err := fs.Read(context.Background(), "users", &dest)
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "session", map[string]string{"username": "alice"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := fs.Delete(ctx, "session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := fs.Delete(ctx, "session"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	var dest map[string]string
	if err := fs.Read(ctx, "session", &dest); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after delete, got %v", err)
	}
}

func TestFileStore_KeySanitization(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "../escape/attempt", "data"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// The file must land inside basePath, not above it.
	entries, err := os.ReadDir(fs.basePath)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected sanitized file inside base path")
	}
}

func TestFileStore_VersionRotation(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := fs.Write(ctx, "users", []string{fmt.Sprintf("gen-%d", i)}); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	// Current holds the latest generation
	var current []string
	if err := fs.Read(ctx, "users", &current); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if current[0] != "gen-4" {
		t.Errorf("expected gen-4, got %s", current[0])
	}

	// v1 holds the previous generation
	target := fs.filePath("users")
	data, err := os.ReadFile(target + ".v1")
	if err != nil {
		t.Fatalf("expected v1 to exist: %v", err)
	}
	if string(data) == "" {
		t.Error("expected v1 to have content")
	}

	// No version beyond the configured limit
	if _, err := os.Stat(target + ".v4"); !os.IsNotExist(err) {
		t.Error("expected no v4 beyond configured limit")
	}
}

func TestFileStore_OverwriteReplacesWholesale(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	if err := fs.Write(ctx, "users", []string{"a", "b", "c"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := fs.Write(ctx, "users", []string{"x"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got []string
	if err := fs.Read(ctx, "users", &got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected wholesale replacement, got %v", got)
	}
}
