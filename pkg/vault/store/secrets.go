package store

import (
	"context"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// SecretsStore abstracts secret persistence. Implementations must make
// every create and update a single atomic operation: no caller may
// observe a half-written record.
type SecretsStore interface {
	// CreateSecret persists a new record.
	CreateSecret(ctx context.Context, secret *model.Secret) error

	// FetchSecret retrieves a secret by name within the given owner
	// scope. An empty owner searches across all owners, returning the
	// earliest-created match. Missing or expired records yield an
	// error wrapping model.ErrNotFound.
	FetchSecret(ctx context.Context, name, owner string) (*model.Secret, error)

	// ListSecrets returns secrets in insertion order. An empty owner
	// lists across all owners.
	ListSecrets(ctx context.Context, owner string) ([]model.Secret, error)

	// UpdateCiphertext atomically replaces the ciphertext of the
	// record with the given id. Returns an error wrapping
	// model.ErrNotFound if no such record exists.
	UpdateCiphertext(ctx context.Context, id string, ciphertext []byte) error
}
