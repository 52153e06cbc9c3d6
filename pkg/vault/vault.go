package vault

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/ciphermind/ciphermind/pkg/audit"
	"github.com/ciphermind/ciphermind/pkg/authn"
	"github.com/ciphermind/ciphermind/pkg/authz"
	"github.com/ciphermind/ciphermind/pkg/crypto"
	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/token"
	"github.com/ciphermind/ciphermind/pkg/vault/store"
)

// rotationValueLen is the number of random bytes a rotation draws;
// hex encoding doubles it in the returned plaintext.
const rotationValueLen = 16

// SecretInfo is the listing view of a secret: metadata only, never the
// value.
type SecretInfo struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// Deps carries the collaborators a Vault is constructed with. Users,
// Secrets, Audit, Cipher, Tokens and Recorder are required; Rand
// defaults to crypto/rand.
type Deps struct {
	Users    store.UsersStore
	Secrets  store.SecretsStore
	Audit    store.AuditStore
	Cipher   crypto.Cipher
	Tokens   *token.Manager
	Recorder *audit.Recorder
	Rand     io.Reader
}

// Vault is the transport-agnostic core: it authenticates callers,
// enforces role and ownership checks, converts secrets to and from
// ciphertext, and records every sensitive operation in the audit
// ledger.
type Vault struct {
	auth     *authn.Service
	users    store.UsersStore
	secrets  store.SecretsStore
	auditLog store.AuditStore
	cipher   crypto.Cipher
	tokens   *token.Manager
	recorder *audit.Recorder
	rand     io.Reader
	locks    keyedMutex
}

// New assembles a Vault from its collaborators.
func New(deps Deps) *Vault {
	r := deps.Rand
	if r == nil {
		r = rand.Reader
	}
	return &Vault{
		auth:     authn.NewService(deps.Users, deps.Tokens),
		users:    deps.Users,
		secrets:  deps.Secrets,
		auditLog: deps.Audit,
		cipher:   deps.Cipher,
		tokens:   deps.Tokens,
		recorder: deps.Recorder,
		rand:     r,
	}
}

// Register creates a user. authToken may be empty during the one-time
// admin bootstrap; afterwards it must carry an admin identity.
func (v *Vault) Register(ctx context.Context, authToken, username, password string, role model.Role) error {
	var actor *token.Claims
	if authToken != "" {
		claims, err := v.tokens.Parse(authToken)
		if err != nil {
			return err
		}
		actor = claims
	}

	user, err := v.auth.Register(ctx, actor, username, password, role)
	if err != nil {
		return err
	}

	actorName := username // bootstrap registers itself
	if actor != nil {
		actorName = actor.Username()
	}
	v.recorder.Record(ctx, audit.UserCreatedEvent{Actor: actorName, NewUser: user.Username, Role: user.Role})
	return nil
}

// Login verifies credentials and returns a signed session token.
func (v *Vault) Login(ctx context.Context, username, password string) (string, error) {
	return v.auth.Login(ctx, username, password)
}

// StoreSecret encrypts value and persists it under the caller's
// ownership.
func (v *Vault) StoreSecret(ctx context.Context, authToken, name, value string) error {
	claims, err := v.verify(authToken, authz.CapStoreSecret)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: secret name is required", model.ErrValidation)
	}

	ciphertext, err := v.cipher.Encrypt([]byte(value))
	if err != nil {
		return err
	}

	secret := &model.Secret{
		ID:         uuid.NewString(),
		Name:       name,
		Ciphertext: ciphertext,
		Owner:      claims.Username(),
	}
	if err := v.secrets.CreateSecret(ctx, secret); err != nil {
		return err
	}

	v.recorder.Record(ctx, audit.StoreEvent{User: claims.Username(), Secret: name})
	return nil
}

// ListSecrets returns the names and owners of secrets visible to the
// caller, in insertion order.
func (v *Vault) ListSecrets(ctx context.Context, authToken string) ([]SecretInfo, error) {
	claims, err := v.verify(authToken, authz.CapListSecrets)
	if err != nil {
		return nil, err
	}

	scope := authz.ReadScope(claims)
	records, err := v.secrets.ListSecrets(ctx, scope)
	if err != nil {
		return nil, err
	}

	infos := make([]SecretInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, SecretInfo{Name: record.Name, Owner: record.Owner})
	}

	v.recorder.Record(ctx, audit.ListEvent{User: claims.Username(), Scope: scope, Count: len(infos)})
	return infos, nil
}

// ReadSecret decrypts and returns a secret's value. Secrets outside
// the caller's visibility scope are indistinguishable from missing
// ones.
func (v *Vault) ReadSecret(ctx context.Context, authToken, name string) (string, error) {
	claims, err := v.verify(authToken, authz.CapReadSecret)
	if err != nil {
		return "", err
	}

	record, err := v.secrets.FetchSecret(ctx, name, authz.ReadScope(claims))
	if err != nil {
		return "", err
	}

	plaintext, err := v.cipher.Decrypt(record.Ciphertext)
	if err != nil {
		// Tamper or wrong key. Not retryable, and worth an entry of
		// its own in the ledger.
		v.recorder.Record(ctx, audit.IntegrityEvent{User: claims.Username(), Secret: name})
		return "", err
	}

	v.recorder.Record(ctx, audit.FetchEvent{User: claims.Username(), Secret: name})
	return string(plaintext), nil
}

// RotateSecret replaces a secret's value with a fresh random one and
// returns the new plaintext exactly once. Concurrent rotations of the
// same record serialize on a per-record lock, so the returned value is
// the value actually persisted.
func (v *Vault) RotateSecret(ctx context.Context, authToken, name string) (string, error) {
	claims, err := v.verify(authToken, authz.CapRotateSecret)
	if err != nil {
		return "", err
	}

	scope := authz.RotateScope(claims)
	record, err := v.secrets.FetchSecret(ctx, name, scope)
	if err != nil {
		return "", err
	}

	unlock := v.locks.lock(record.Owner + "/" + record.Name)
	defer unlock()

	// Re-fetch inside the critical section: a racing rotation may have
	// replaced the ciphertext between lookup and lock acquisition.
	record, err = v.secrets.FetchSecret(ctx, name, record.Owner)
	if err != nil {
		return "", err
	}

	newValue, err := crypto.ReadHex(v.rand, rotationValueLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate rotation value: %w", err)
	}

	ciphertext, err := v.cipher.Encrypt([]byte(newValue))
	if err != nil {
		return "", err
	}
	if err := v.secrets.UpdateCiphertext(ctx, record.ID, ciphertext); err != nil {
		return "", err
	}

	v.recorder.Record(ctx, audit.RotateEvent{User: claims.Username(), Secret: name, Owner: record.Owner})
	return newValue, nil
}

// ListAudit returns the audit trail, newest first. Restricted to admin
// and auditor roles.
func (v *Vault) ListAudit(ctx context.Context, authToken string) ([]model.AuditEvent, error) {
	if _, err := v.verify(authToken, authz.CapListAudit); err != nil {
		return nil, err
	}
	return v.auditLog.List(ctx)
}

// AuditGaps reports how many audit events failed to persist since
// startup, for operational monitoring.
func (v *Vault) AuditGaps() uint64 {
	return v.recorder.Dropped()
}

func (v *Vault) verify(authToken string, capability authz.Capability) (*token.Claims, error) {
	claims, err := v.tokens.Parse(authToken)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(claims, capability); err != nil {
		return nil, err
	}
	return claims, nil
}
