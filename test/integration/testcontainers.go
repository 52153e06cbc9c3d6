package integration

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	migrations "github.com/ciphermind/ciphermind/db"
	"github.com/ciphermind/ciphermind/pkg/audit"
	"github.com/ciphermind/ciphermind/pkg/crypto"
	"github.com/ciphermind/ciphermind/pkg/db"
	"github.com/ciphermind/ciphermind/pkg/logger"
	"github.com/ciphermind/ciphermind/pkg/server"
	"github.com/ciphermind/ciphermind/pkg/server/endpoints"
	"github.com/ciphermind/ciphermind/pkg/server/middleware"
	"github.com/ciphermind/ciphermind/pkg/token"
	"github.com/ciphermind/ciphermind/pkg/vault"
	gormstore "github.com/ciphermind/ciphermind/pkg/vault/store/gorm"
)

// TestContext holds the resources shared by the integration suite: a
// PostgreSQL testcontainer with the schema applied and an in-process
// vault server in front of it.
type TestContext struct {
	Container   *tcpostgres.PostgresContainer
	DatabaseURL string
	Core        *vault.Vault
	HTTPServer  *httptest.Server
	BaseURL     string
	Client      *http.Client
}

// NewTestContext starts a PostgreSQL container, migrates the schema
// and serves the vault API from within the test process.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ciphermind"),
		tcpostgres.WithUsername("ciphermind"),
		tcpostgres.WithPassword("ciphermind"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := runMigrations(dbURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	core, tokens, err := buildVault(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	s := server.NewServer(core, logger.New(slog.LevelError), "127.0.0.1:0")
	endpoints.RegisterAll(s, middleware.NewAuthenticator(tokens))
	httpServer := httptest.NewServer(s.Router)

	return &TestContext{
		Container:   container,
		DatabaseURL: dbURL,
		Core:        core,
		HTTPServer:  httpServer,
		BaseURL:     httpServer.URL,
		Client:      httpServer.Client(),
	}, nil
}

// Close shuts the in-process server down and terminates the container.
func (tc *TestContext) Close(ctx context.Context) {
	if tc.HTTPServer != nil {
		tc.HTTPServer.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

func runMigrations(dbURL string) error {
	migrationsFS, err := fs.Sub(migrations.Migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func buildVault(ctx context.Context, dbURL string) (*vault.Vault, *token.Manager, error) {
	material, err := crypto.RandomBytes(crypto.KeySize)
	if err != nil {
		return nil, nil, err
	}

	keyring, err := crypto.NewKeyring(material)
	if err != nil {
		return nil, nil, err
	}
	tokenKey, err := crypto.DeriveTokenKey(material)
	if err != nil {
		return nil, nil, err
	}
	tokens := token.NewManager(tokenKey, time.Hour)

	gormDB, err := db.Connect(ctx, db.Config{URL: dbURL})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	auditStore := audit.NewStoreWithDB(sqlDB)
	log := logger.New(slog.LevelError)

	core := vault.New(vault.Deps{
		Users:    gormstore.NewUsersStore(gormDB),
		Secrets:  gormstore.NewSecretsStore(gormDB),
		Audit:    auditStore,
		Cipher:   keyring,
		Tokens:   tokens,
		Recorder: audit.NewRecorder(auditStore, log.Logger),
	})
	return core, tokens, nil
}
