// Package interfaces defines service contracts for FinTrack
package interfaces

import "context"

// Record keys for the two persisted slots. Each slot holds one serialized
// blob, read in full and written in full on every mutation.
const (
	UsersRecord   = "users"
	SessionRecord = "session"
)

// BlobStore is the persistence surface: named slots holding JSON blobs.
// Implementations must make Write atomic from the caller's perspective:
// a crash mid-write must never leave a half-written record visible.
type BlobStore interface {
	// Read unmarshals the record into dest. Returns an error wrapping
	// storage.ErrRecordNotFound when the slot has never been written.
	Read(ctx context.Context, key string, dest interface{}) error

	// Write serializes value and replaces the record wholesale.
	Write(ctx context.Context, key string, value interface{}) error

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
