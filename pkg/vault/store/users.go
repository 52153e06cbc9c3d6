package store

import (
	"context"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// UsersStore abstracts user persistence.
type UsersStore interface {
	// CreateUser persists a new user. A duplicate username yields an
	// error wrapping model.ErrStore.
	CreateUser(ctx context.Context, user *model.User) error

	// FindUser retrieves a user by username. Returns an error wrapping
	// model.ErrNotFound if the user doesn't exist.
	FindUser(ctx context.Context, username string) (*model.User, error)

	// AdminExists reports whether any admin account has been created.
	// Drives the one-time bootstrap exemption on registration.
	AdminExists(ctx context.Context) (bool, error)
}
