package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "ciphermindctl",
	Short: "Ciphermind secret vault command line interface",
	Long: `ciphermindctl manages a Ciphermind secret vault: it generates data
keys, runs database migrations, bootstraps the first admin account and
starts the API server.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
