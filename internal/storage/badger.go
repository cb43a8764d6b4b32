package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/fintrackhq/fintrack/internal/common"
)

// blobRecord is the BadgerHold row type: one JSON blob per record key.
type blobRecord struct {
	Key        string `badgerhold:"key"`
	Value      []byte
	ModifiedAt time.Time
}

// BadgerStore implements the blob surface on an embedded BadgerHold database.
// Writes are single upserts, so atomicity comes from the underlying store.
type BadgerStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewBadgerStore opens a BadgerHold store at the configured directory path.
func NewBadgerStore(logger *common.Logger, config *common.StorageConfig) (*BadgerStore, error) {
	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create badger directory %s: %w", config.Path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = config.Path
	options.ValueDir = config.Path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", config.Path).Msg("BadgerHold store opened")

	return &BadgerStore{db: db, logger: logger}, nil
}

// Read unmarshals the record into dest.
func (s *BadgerStore) Read(_ context.Context, key string, dest interface{}) error {
	var rec blobRecord
	if err := s.db.Get(key, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("record '%s': %w", key, ErrRecordNotFound)
		}
		return fmt.Errorf("failed to get record '%s': %w", key, err)
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return fmt.Errorf("failed to parse record '%s': %w", key, err)
	}
	return nil
}

// Write serializes the record and upserts it.
func (s *BadgerStore) Write(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record '%s': %w", key, err)
	}
	rec := blobRecord{
		Key:        key,
		Value:      data,
		ModifiedAt: time.Now(),
	}
	if err := s.db.Upsert(key, rec); err != nil {
		return fmt.Errorf("failed to save record '%s': %w", key, err)
	}
	return nil
}

// Delete removes the record. A missing record is not an error.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if err := s.db.Delete(key, blobRecord{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete record '%s': %w", key, err)
	}
	return nil
}

// Close shuts down the BadgerHold database.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
