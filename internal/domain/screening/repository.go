package screening

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving screening
// records. Records are insert-only; there is no update path.
type Repository interface {
	// Insert stores a new record and fills in its ID and CreatedAt.
	Insert(ctx context.Context, record *Record) error
	// GetByID returns a single record.
	GetByID(ctx context.Context, id int64) (*Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)
	// ListSince returns all records created at or after the given time,
	// newest first.
	ListSince(ctx context.Context, since time.Time) ([]*Record, error)
}
