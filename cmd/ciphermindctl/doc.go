// Ciphermind is a role-gated secret vault: secrets are encrypted at
// rest, access is decided by role and ownership, rotations mint fresh
// values, and every sensitive operation lands in an append-only audit
// trail.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/vault: core vault operations
//   - pkg/crypto: encryption engine and key derivation
//   - pkg/authn: password hashing and login
//   - pkg/authz: role capability checks
//   - pkg/audit: audit event recording
//   - pkg/model: database models and the error taxonomy
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Generate a data key for encryption
//	export CIPHERMIND_DATA_KEY="$(ciphermindctl data-key generate)"
//
//	# Run database migrations
//	ciphermindctl db migrate
//
//	# Bootstrap the first admin account
//	ciphermindctl account create admin
//
//	# Start the server
//	ciphermindctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - CIPHERMIND_DATA_KEY: Base64-encoded 256-bit master key
//   - CIPHERMIND_EPHEMERAL_KEY: use a throwaway key (development only)
//   - CIPHERMIND_TOKEN_TTL: session token lifetime (default: 8h)
//   - CIPHERMIND_LOG_LEVEL: log level (debug, info, warn, error)
//   - PORT: server port (default: 8080)
package main
