// Package authn implements the CipherMind authentication service:
// account registration with a one-time admin bootstrap, salted
// memory-hard password hashing, and issuance of signed session tokens.
package authn
