// Package config loads and validates the vault server configuration.
//
// Settings come from three layers, later overriding earlier:
//
//   - built-in defaults
//   - an optional YAML file (CIPHERMIND_CONFIG, default
//     /etc/ciphermind/ciphermind.yml)
//   - environment variables
//
// # Key settings
//
//   - DATABASE_URL: PostgreSQL connection string (required)
//   - CIPHERMIND_DATA_KEY: base64 master key material (required)
//   - CIPHERMIND_EPHEMERAL_KEY: throwaway key for development
//   - CIPHERMIND_TOKEN_TTL: session token lifetime
//   - CIPHERMIND_LOG_LEVEL: logging verbosity
package config
