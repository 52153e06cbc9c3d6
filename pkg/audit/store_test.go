package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ciphermind/ciphermind/pkg/model"
)

func TestStoreAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := &model.AuditEvent{
		Username:  "alice",
		Action:    model.ActionReadSecret,
		Target:    "db-pass",
		Timestamp: ts,
	}

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(
			"alice",
			"READ_SECRET",
			"db-pass",
			ts,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Append(context.Background(), event); err != nil {
		t.Errorf("Append() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	newer := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"username", "action", "target", "timestamp"}).
		AddRow("alice", "ROTATE_SECRET", "db-pass", newer).
		AddRow("alice", "STORE_SECRET", "db-pass", older)

	mock.ExpectQuery(`SELECT username, action, target, timestamp`).
		WillReturnRows(rows)

	events, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != model.ActionRotateSecret {
		t.Errorf("expected newest event first, got %s", events[0].Action)
	}
	if !events[0].Timestamp.After(events[1].Timestamp) {
		t.Error("events not ordered by timestamp descending")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreAppendFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WillReturnError(context.DeadlineExceeded)

	err = store.Append(context.Background(), &model.AuditEvent{
		Username:  "alice",
		Action:    model.ActionStoreSecret,
		Target:    "db-pass",
		Timestamp: time.Now(),
	})
	if err == nil {
		t.Fatal("expected error from failed append")
	}
}
