package gorm

import (
	"context"
	"fmt"
	"time"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// defaultTimeout bounds every persistence call so the core surfaces a
// transient store failure instead of hanging on a stuck backend.
const defaultTimeout = 5 * time.Second

var storeTimeout = defaultTimeout

// SetTimeout overrides the per-call persistence deadline. Applied at
// startup before any store is used.
func SetTimeout(d time.Duration) {
	if d > 0 {
		storeTimeout = d
	}
}

func boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrStore, op, err)
}
