package model

import "time"

// Secret is an encrypted record keyed by (owner, name). Ciphertext is a
// packed token produced by the encryption engine; the plaintext value
// never reaches this layer. Mutated only by rotation.
type Secret struct {
	ID         string     `gorm:"column:id;primaryKey"`
	Name       string     `gorm:"column:name;uniqueIndex:idx_secrets_owner_name"`
	Ciphertext []byte     `gorm:"column:ciphertext;type:bytea"`
	Owner      string     `gorm:"column:owner;uniqueIndex:idx_secrets_owner_name"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt  *time.Time `gorm:"column:expires_at"`
}

// IsExpired returns true if the secret has an expiration time that has
// passed.
func (s *Secret) IsExpired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return now.After(*s.ExpiresAt)
}

func (s Secret) TableName() string {
	return "secrets"
}
