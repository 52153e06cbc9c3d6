package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/vault/store"
)

// Ensure Store implements store.AuditStore
var _ store.AuditStore = (*Store)(nil)

// Store persists audit events via database/sql. The ledger is insert
// only; this type exposes nothing that updates or deletes rows.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// NewStoreWithDB creates a store with an existing database connection.
// Useful for testing with sqlmock.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db, timeout: 5 * time.Second}
}

// Append inserts one event into the ledger.
func (s *Store) Append(ctx context.Context, event *model.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (username, action, target, timestamp)
		VALUES ($1, $2, $3, $4)
	`,
		event.Username,
		string(event.Action),
		event.Target,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("%w: append audit event: %v", model.ErrStore, err)
	}
	return nil
}

// List returns all events, newest first.
func (s *Store) List(ctx context.Context) ([]model.AuditEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT username, action, target, timestamp
		FROM audit_logs
		ORDER BY timestamp DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list audit events: %v", model.ErrStore, err)
	}
	defer rows.Close()

	var events []model.AuditEvent
	for rows.Next() {
		var event model.AuditEvent
		var action string
		if err := rows.Scan(&event.Username, &action, &event.Target, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan audit event: %v", model.ErrStore, err)
		}
		event.Action = model.Action(action)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list audit events: %v", model.ErrStore, err)
	}
	return events, nil
}
