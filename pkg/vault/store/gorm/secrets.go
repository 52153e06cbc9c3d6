package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/vault/store"
)

// Ensure SecretsStore implements store.SecretsStore
var _ store.SecretsStore = (*SecretsStore)(nil)

// SecretsStore implements store.SecretsStore using GORM
type SecretsStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSecretsStore creates a new SecretsStore
func NewSecretsStore(db *gorm.DB) *SecretsStore {
	return &SecretsStore{db: db, now: time.Now}
}

// CreateSecret persists a new secret record in a single statement.
func (s *SecretsStore) CreateSecret(ctx context.Context, secret *model.Secret) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(secret).Error; err != nil {
		return storeError("create secret", err)
	}
	return nil
}

// FetchSecret retrieves a secret by name within the given owner scope.
// An empty owner searches across all owners.
func (s *SecretsStore) FetchSecret(ctx context.Context, name, owner string) (*model.Secret, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	query := map[string]interface{}{"name": name}
	if owner != "" {
		query["owner"] = owner
	}

	var secret model.Secret
	tx := s.db.WithContext(ctx).Order("created_at asc").Where(query).First(&secret)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: secret %q", model.ErrNotFound, name)
		}
		return nil, storeError("fetch secret", tx.Error)
	}

	if secret.IsExpired(s.now()) {
		return nil, fmt.Errorf("%w: secret %q has expired", model.ErrNotFound, name)
	}

	return &secret, nil
}

// ListSecrets returns secrets in insertion order, optionally scoped to
// one owner.
func (s *SecretsStore) ListSecrets(ctx context.Context, owner string) ([]model.Secret, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	tx := s.db.WithContext(ctx).Order("created_at asc")
	if owner != "" {
		tx = tx.Where("owner = ?", owner)
	}

	var secrets []model.Secret
	if err := tx.Find(&secrets).Error; err != nil {
		return nil, storeError("list secrets", err)
	}
	return secrets, nil
}

// UpdateCiphertext atomically replaces the stored ciphertext.
func (s *SecretsStore) UpdateCiphertext(ctx context.Context, id string, ciphertext []byte) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	tx := s.db.WithContext(ctx).Model(&model.Secret{}).Where("id = ?", id).Update("ciphertext", ciphertext)
	if tx.Error != nil {
		return storeError("update ciphertext", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: secret id %q", model.ErrNotFound, id)
	}
	return nil
}
