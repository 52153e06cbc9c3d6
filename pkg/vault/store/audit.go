package store

import (
	"context"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// AuditStore abstracts the append-only audit ledger. Events are never
// updated or deleted.
type AuditStore interface {
	// Append durably records one event.
	Append(ctx context.Context, event *model.AuditEvent) error

	// List returns all events ordered by timestamp descending.
	List(ctx context.Context) ([]model.AuditEvent, error)
}
