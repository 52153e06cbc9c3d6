// Package vault implements the core secret vault: registration and
// login, encrypted secret storage, role- and ownership-scoped access,
// rotation, and the audit trail. It is transport agnostic; pkg/server
// exposes it over HTTP and cmd/ciphermindctl drives it from the
// command line.
package vault
