package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ciphermind/ciphermind/pkg/config"
	"github.com/ciphermind/ciphermind/pkg/crypto"
	"github.com/ciphermind/ciphermind/pkg/logger"
	"github.com/ciphermind/ciphermind/pkg/model"
)

// accountCreateCmd represents the account create command
var accountCreateCmd = &cobra.Command{
	Use:   "create [username]",
	Short: "Bootstrap the first admin account",
	Long: `Bootstrap the first admin account.

This command creates the vault's first account, which must be an admin.
It only works while no admin exists; afterwards accounts are created
through the API by an authenticated admin.

If no password is provided, a random one is generated and printed to
STDOUT.

Example:
  ciphermindctl account create admin
  ciphermindctl account create admin --password "s3cret"`,
	Run: func(cmd *cobra.Command, args []string) {
		username := "admin"
		if len(args) > 0 {
			username = args[0]
		}

		password, _ := cmd.Flags().GetString("password")
		generated := password == ""

		if err := createAdminAccount(username, &password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created admin account '%s'\n", username)
		if generated {
			fmt.Printf("Password for %s: %s\n", username, password)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountCreateCmd)
	accountCreateCmd.Flags().StringP("password", "p", "", "Password for the new account (default: generated)")
}

func createAdminAccount(username string, password *string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	if *password == "" {
		generated, err := crypto.ReadHex(rand.Reader, 16)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		*password = generated
	}

	ctx := context.Background()
	core, _, _, err := buildCore(ctx, cfg, log)
	if err != nil {
		return err
	}

	return core.Register(ctx, "", username, *password, model.RoleAdmin)
}
