package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/vault"
)

// MockVault is a testify mock of the server.Vault interface.
type MockVault struct {
	mock.Mock
}

func (m *MockVault) Register(ctx context.Context, authToken, username, password string, role model.Role) error {
	args := m.Called(ctx, authToken, username, password, role)
	return args.Error(0)
}

func (m *MockVault) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockVault) StoreSecret(ctx context.Context, authToken, name, value string) error {
	args := m.Called(ctx, authToken, name, value)
	return args.Error(0)
}

func (m *MockVault) ListSecrets(ctx context.Context, authToken string) ([]vault.SecretInfo, error) {
	args := m.Called(ctx, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vault.SecretInfo), args.Error(1)
}

func (m *MockVault) ReadSecret(ctx context.Context, authToken, name string) (string, error) {
	args := m.Called(ctx, authToken, name)
	return args.String(0), args.Error(1)
}

func (m *MockVault) RotateSecret(ctx context.Context, authToken, name string) (string, error) {
	args := m.Called(ctx, authToken, name)
	return args.String(0), args.Error(1)
}

func (m *MockVault) ListAudit(ctx context.Context, authToken string) ([]model.AuditEvent, error) {
	args := m.Called(ctx, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEvent), args.Error(1)
}
