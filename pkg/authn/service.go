package authn

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/token"
	"github.com/ciphermind/ciphermind/pkg/vault/store"
)

// Service verifies credentials, creates accounts and issues session
// tokens.
type Service struct {
	users  store.UsersStore
	tokens *token.Manager

	dummyOnce sync.Once
	dummyHash string
}

// NewService creates an authentication service.
func NewService(users store.UsersStore, tokens *token.Manager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new user.
//
// While no admin account exists registration is a one-time bootstrap:
// the caller must request the admin role and no token is required. Once
// an admin exists, actor must carry an admin token and any role value
// is permitted.
func (s *Service) Register(ctx context.Context, actor *token.Claims, username, password string, role model.Role) (*model.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", model.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", model.ErrValidation, role)
	}

	adminExists, err := s.users.AdminExists(ctx)
	if err != nil {
		return nil, err
	}

	if !adminExists {
		if role != model.RoleAdmin {
			return nil, fmt.Errorf("%w: the first account must be an admin", model.ErrValidation)
		}
	} else if actor == nil || actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may register users", model.ErrPermission)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown users
// and wrong passwords return the same error, and the unknown-user path
// still performs a hash verification so the two are indistinguishable
// in timing.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindUser(ctx, username)
	if err != nil {
		VerifyPassword(password, s.timingDummy())
		return "", fmt.Errorf("%w: invalid username or password", model.ErrAuth)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", fmt.Errorf("%w: invalid username or password", model.ErrAuth)
	}

	return s.tokens.Issue(user.Username, user.Role)
}

// timingDummy returns a throwaway hash used to equalize the cost of
// failed logins against unknown usernames.
func (s *Service) timingDummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = HashPassword("timing-equalizer")
	})
	return s.dummyHash
}
