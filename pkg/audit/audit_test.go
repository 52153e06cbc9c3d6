package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// mockAuditStore implements store.AuditStore using testify/mock
type mockAuditStore struct {
	mock.Mock
}

func (m *mockAuditStore) Append(ctx context.Context, event *model.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockAuditStore) List(ctx context.Context) ([]model.AuditEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEvent), args.Error(1)
}

func TestRecorderRecord(t *testing.T) {
	ledger := &mockAuditStore{}
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	ledger.On("Append", mock.Anything, mock.MatchedBy(func(e *model.AuditEvent) bool {
		return e.Username == "alice" &&
			e.Action == model.ActionStoreSecret &&
			e.Target == "db-pass" &&
			e.Timestamp.Equal(ts)
	})).Return(nil)

	var logBuf bytes.Buffer
	recorder := NewRecorder(ledger, slog.New(slog.NewTextHandler(&logBuf, nil))).
		WithClock(func() time.Time { return ts })

	recorder.Record(context.Background(), StoreEvent{User: "alice", Secret: "db-pass"})

	ledger.AssertExpectations(t)
	assert.Equal(t, uint64(0), recorder.Dropped())
	assert.Contains(t, logBuf.String(), "alice stored secret db-pass")
}

func TestRecorderAppendFailureSurfacesGap(t *testing.T) {
	ledger := &mockAuditStore{}
	ledger.On("Append", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	var logBuf bytes.Buffer
	recorder := NewRecorder(ledger, slog.New(slog.NewTextHandler(&logBuf, nil)))

	// A failed append must not panic or propagate; it is counted and
	// logged instead.
	recorder.Record(context.Background(), FetchEvent{User: "alice", Secret: "db-pass"})
	recorder.Record(context.Background(), FetchEvent{User: "alice", Secret: "db-pass"})

	assert.Equal(t, uint64(2), recorder.Dropped())
	assert.Contains(t, logBuf.String(), "audit append failed")
}

func TestEventShapes(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		action   model.Action
		username string
		target   string
		severity Severity
	}{
		{
			name:     "user created",
			event:    UserCreatedEvent{Actor: "root", NewUser: "alice", Role: model.RoleAdmin},
			action:   model.ActionCreateUser,
			username: "root",
			target:   "alice",
			severity: SeverityInfo,
		},
		{
			name:     "store",
			event:    StoreEvent{User: "alice", Secret: "db-pass"},
			action:   model.ActionStoreSecret,
			username: "alice",
			target:   "db-pass",
			severity: SeverityInfo,
		},
		{
			name:     "list all owners",
			event:    ListEvent{User: "audrey", Scope: "", Count: 3},
			action:   model.ActionListSecrets,
			username: "audrey",
			target:   "*",
			severity: SeverityInfo,
		},
		{
			name:     "fetch",
			event:    FetchEvent{User: "alice", Secret: "db-pass"},
			action:   model.ActionReadSecret,
			username: "alice",
			target:   "db-pass",
			severity: SeverityInfo,
		},
		{
			name:     "rotate",
			event:    RotateEvent{User: "alice", Secret: "db-pass"},
			action:   model.ActionRotateSecret,
			username: "alice",
			target:   "db-pass",
			severity: SeverityInfo,
		},
		{
			name:     "integrity violation",
			event:    IntegrityEvent{User: "alice", Secret: "db-pass"},
			action:   model.ActionReadSecret,
			username: "alice",
			target:   "db-pass",
			severity: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.action, tt.event.Action())
			assert.Equal(t, tt.username, tt.event.Username())
			assert.Equal(t, tt.target, tt.event.Target())
			assert.Equal(t, tt.severity, tt.event.Severity())
			require.NotEmpty(t, tt.event.Message())
		})
	}
}
