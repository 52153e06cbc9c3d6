package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/vault/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser persists a new user record.
func (s *UsersStore) CreateUser(ctx context.Context, user *model.User) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: username %q already exists", model.ErrStore, user.Username)
		}
		return storeError("create user", err)
	}
	return nil
}

// FindUser retrieves a user by username.
func (s *UsersStore) FindUser(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	var user model.User
	tx := s.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", model.ErrNotFound, username)
		}
		return nil, storeError("find user", tx.Error)
	}
	return &user, nil
}

// AdminExists reports whether any admin account has been created.
func (s *UsersStore) AdminExists(ctx context.Context) (bool, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	var count int64
	tx := s.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if tx.Error != nil {
		return false, storeError("count admins", tx.Error)
	}
	return count > 0, nil
}
