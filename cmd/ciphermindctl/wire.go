package main

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/audit"
	"github.com/ciphermind/ciphermind/pkg/config"
	"github.com/ciphermind/ciphermind/pkg/crypto"
	"github.com/ciphermind/ciphermind/pkg/db"
	"github.com/ciphermind/ciphermind/pkg/logger"
	"github.com/ciphermind/ciphermind/pkg/model"
	"github.com/ciphermind/ciphermind/pkg/token"
	"github.com/ciphermind/ciphermind/pkg/vault"
	gormstore "github.com/ciphermind/ciphermind/pkg/vault/store/gorm"
)

// buildCore wires the full vault from configuration: key material,
// database connection, stores, cipher, token manager and audit
// recorder. The returned health func pings the database.
func buildCore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*vault.Vault, *token.Manager, func(context.Context) error, error) {
	var material []byte
	if cfg.DataKey != "" {
		decoded, err := base64.StdEncoding.DecodeString(cfg.DataKey)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: CIPHERMIND_DATA_KEY is not valid base64: %v", model.ErrConfig, err)
		}
		material = decoded
	}

	resolved, ephemeral, err := crypto.ResolveMaterial(material, cfg.EphemeralKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", model.ErrConfig, err)
	}
	if ephemeral {
		log.Warn("running with an ephemeral data key; stored secrets become unreadable after restart")
	}

	keyring, err := crypto.NewKeyring(resolved)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: unable to initialize cipher: %v", model.ErrConfig, err)
	}

	tokenKey, err := crypto.DeriveTokenKey(resolved)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: unable to derive token signing key: %v", model.ErrConfig, err)
	}
	tokens := token.NewManager(tokenKey, cfg.TokenTTL)

	gormDB, err := db.Connect(ctx, db.Config{
		URL:        cfg.DatabaseURL,
		LogQueries: cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	gormstore.SetTimeout(cfg.StoreTimeout)

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: unable to access connection pool: %v", model.ErrConfig, err)
	}

	auditStore := audit.NewStoreWithDB(sqlDB)
	recorder := audit.NewRecorder(auditStore, log.Logger)

	core := vault.New(vault.Deps{
		Users:    gormstore.NewUsersStore(gormDB),
		Secrets:  gormstore.NewSecretsStore(gormDB),
		Audit:    auditStore,
		Cipher:   keyring,
		Tokens:   tokens,
		Recorder: recorder,
	})
	return core, tokens, sqlDB.PingContext, nil
}
