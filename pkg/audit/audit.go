package audit

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/vault/store"
)

// Severity levels for the operational log line emitted with each event.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Event represents an audit event. One type exists per sensitive
// operation; each knows how to describe itself for the ledger and for
// the operational log.
type Event interface {
	Action() model.Action
	Username() string
	Target() string
	Message() string
	Severity() Severity
}

// Recorder appends events to the audit ledger. Appends happen after
// the primary operation has committed: a failed append never rolls the
// operation back, but it is logged and counted so the gap is visible
// to monitoring rather than silently dropped.
type Recorder struct {
	store   store.AuditStore
	log     *slog.Logger
	now     func() time.Time
	dropped atomic.Uint64
}

// NewRecorder creates a Recorder writing to the given ledger store.
func NewRecorder(auditStore store.AuditStore, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{store: auditStore, log: log, now: time.Now}
}

// WithClock replaces the clock source, for tests.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record appends one event to the ledger and emits a structured log
// line for it.
func (r *Recorder) Record(ctx context.Context, event Event) {
	attrs := []any{
		"action", string(event.Action()),
		"user", event.Username(),
		"target", event.Target(),
	}

	switch event.Severity() {
	case SeverityError:
		r.log.Error(event.Message(), attrs...)
	case SeverityWarning:
		r.log.Warn(event.Message(), attrs...)
	default:
		r.log.Info(event.Message(), attrs...)
	}

	row := &model.AuditEvent{
		Username:  event.Username(),
		Action:    event.Action(),
		Target:    event.Target(),
		Timestamp: r.now().UTC(),
	}
	if err := r.store.Append(ctx, row); err != nil {
		r.dropped.Add(1)
		r.log.Error("audit append failed, event lost",
			"action", string(event.Action()),
			"target", event.Target(),
			"error", err,
		)
	}
}

// Dropped returns how many events failed to persist since startup.
// Non-zero means the ledger has gaps.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}
