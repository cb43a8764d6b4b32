package storage

import (
	"fmt"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/interfaces"
)

// NewStore creates the configured blob store backend.
// "file" is the default; "badger" selects the embedded BadgerHold backend.
func NewStore(logger *common.Logger, config *common.Config) (interfaces.BlobStore, error) {
	switch config.Storage.Backend {
	case "", "file":
		return NewFileStore(logger, &config.Storage)
	case "badger":
		return NewBadgerStore(logger, &config.Storage)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", config.Storage.Backend)
	}
}
