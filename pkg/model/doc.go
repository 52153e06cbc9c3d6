// Package model defines the CipherMind database models and the error
// taxonomy shared across the vault core.
//
// Models map to the persisted layout:
//
//   - User       -> users(id, username, password_hash, role, created_at)
//   - Secret     -> secrets(id, name, ciphertext, owner, created_at, expires_at)
//   - AuditEvent -> audit_logs(id, username, action, target, timestamp)
package model
