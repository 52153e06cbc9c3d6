package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ciphermind/ciphermind/pkg/config"
	"github.com/ciphermind/ciphermind/pkg/logger"
	"github.com/ciphermind/ciphermind/pkg/server"
	"github.com/ciphermind/ciphermind/pkg/server/endpoints"
	"github.com/ciphermind/ciphermind/pkg/server/middleware"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Ciphermind API server",
	Long: `Run the Ciphermind API server.

Running the server requires the environment variables DATABASE_URL and
CIPHERMIND_DATA_KEY (or CIPHERMIND_EPHEMERAL_KEY=true for development).

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		log := logger.New(logger.ParseLevel(cfg.LogLevel))

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("running database migrations")
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				log.Fatal("migration failed", "error", err)
			}
		}

		core, tokens, health, err := buildCore(context.Background(), cfg, log)
		if err != nil {
			log.Fatal("startup failed", "error", err)
		}

		s := server.NewServer(core, log, cfg.Addr())
		s.Health = health
		endpoints.RegisterAll(s, middleware.NewAuthenticator(tokens))

		log.Info("server listening", "addr", cfg.Addr())
		log.Fatal("server stopped", "error", s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().Bool("no-migrate", false, "Skip database migrations on startup")
}
