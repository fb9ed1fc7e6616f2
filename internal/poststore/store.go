// Package poststore manages the lifecycle of post records. Each post is an
// individually-addressed JSON document keyed by a generated identifier. The
// package guarantees that a record is never observable in a partially-written
// state and that concurrent mutations of the same identifier never lose an
// update.
package poststore

import (
	"context"
	"errors"

	"inkstream/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for the identifier.
	ErrNotFound = errors.New("post not found")
	// ErrConflict is returned when a record already exists for a freshly
	// generated identifier. Callers may retry with a new identifier.
	ErrConflict = errors.New("post identifier already exists")
)

// Store defines the operations for post persistence.
//
// Operations on different identifiers are independent and may interleave in
// any order. Operations on the same identifier are linearizable: Update calls
// for one identifier execute as if serialized. ListAll is deliberately not
// isolated from concurrent writes; a listing may mix pre- and post-update
// states across records.
type Store interface {
	// Create persists a new record. Returns ErrConflict if a record with
	// the same identifier already exists.
	Create(ctx context.Context, post *models.Post) error

	// Get returns the record for the identifier, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Post, error)

	// Update applies mutate to the current record under the per-identifier
	// lock and persists the result. Returns the updated record, or
	// ErrNotFound if no record exists at read time.
	Update(ctx context.Context, id string, mutate func(*models.Post)) (*models.Post, error)

	// ListAll enumerates every persisted record. Unreadable or corrupt
	// records are skipped and logged, never fatal.
	ListAll(ctx context.Context) ([]*models.Post, error)
}
