package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// Config holds database connection configuration.
type Config struct {
	// URL is the PostgreSQL connection string.
	URL string
	// LogQueries enables SQL statement logging.
	LogQueries bool
}

// Connect opens a PostgreSQL connection and verifies the database is
// reachable. An unreachable or misconfigured database is a startup
// error, not something to limp along without.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: database URL is required", model.ErrConfig)
	}

	logMode := gormlogger.Silent
	if cfg.LogQueries {
		logMode = gormlogger.Info
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: gormlogger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %v", model.ErrConfig, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to access connection pool: %v", model.ErrConfig, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: database is unreachable: %v", model.ErrConfig, err)
	}

	return gormDB, nil
}
