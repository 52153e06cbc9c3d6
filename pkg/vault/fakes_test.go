package vault

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ciphermind/ciphermind/pkg/audit"
	"github.com/ciphermind/ciphermind/pkg/crypto"
	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/token"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*model.User{}}
}

func (s *memUsers) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return fmt.Errorf("%w: username already exists", model.ErrStore)
	}
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *memUsers) FindUser(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", model.ErrNotFound, username)
	}
	copied := *user
	return &copied, nil
}

func (s *memUsers) AdminExists(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Role == model.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

type memSecrets struct {
	mu      sync.Mutex
	records []*model.Secret
}

func (s *memSecrets) CreateSecret(_ context.Context, secret *model.Secret) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *secret
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	s.records = append(s.records, &copied)
	return nil
}

func (s *memSecrets) FetchSecret(_ context.Context, name, owner string) (*model.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.Name != name {
			continue
		}
		if owner != "" && record.Owner != owner {
			continue
		}
		if record.IsExpired(time.Now()) {
			continue
		}
		copied := *record
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: secret %q", model.ErrNotFound, name)
}

func (s *memSecrets) ListSecrets(_ context.Context, owner string) ([]model.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Secret
	for _, record := range s.records {
		if owner != "" && record.Owner != owner {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (s *memSecrets) UpdateCiphertext(_ context.Context, id string, ciphertext []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.ID == id {
			record.Ciphertext = append([]byte(nil), ciphertext...)
			return nil
		}
	}
	return fmt.Errorf("%w: secret id %q", model.ErrNotFound, id)
}

type memAudit struct {
	mu         sync.Mutex
	events     []model.AuditEvent
	failAppend error
}

func (s *memAudit) Append(_ context.Context, event *model.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppend != nil {
		return s.failAppend
	}
	copied := *event
	copied.ID = uint(len(s.events) + 1)
	s.events = append(s.events, copied)
	return nil
}

func (s *memAudit) List(_ context.Context) ([]model.AuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditEvent, 0, len(s.events))
	for i := len(s.events) - 1; i >= 0; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

type testVault struct {
	*Vault
	users   *memUsers
	secrets *memSecrets
	ledger  *memAudit
	tokens  *token.Manager
}

func newTestVault(t *testing.T) *testVault {
	t.Helper()

	material := bytes.Repeat([]byte{0x42}, crypto.KeySize)
	keyring, err := crypto.NewKeyring(material)
	require.NoError(t, err)

	users := newMemUsers()
	secrets := &memSecrets{}
	ledger := &memAudit{}
	tokens := token.NewManager([]byte("vault-test-signing-key"), time.Hour)
	recorder := audit.NewRecorder(ledger, slog.New(slog.DiscardHandler))

	v := New(Deps{
		Users:    users,
		Secrets:  secrets,
		Audit:    ledger,
		Cipher:   keyring,
		Tokens:   tokens,
		Recorder: recorder,
	})
	return &testVault{Vault: v, users: users, secrets: secrets, ledger: ledger, tokens: tokens}
}

// registerAndLogin provisions an account and returns a session token
// for it. The very first call in a test must create the admin.
func (tv *testVault) registerAndLogin(t *testing.T, adminToken, username, password string, role model.Role) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, tv.Register(ctx, adminToken, username, password, role))
	tok, err := tv.Login(ctx, username, password)
	require.NoError(t, err)
	return tok
}
