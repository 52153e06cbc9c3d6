package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ciphermind/ciphermind/pkg/crypto"
)

// dataKeyGenerateCmd represents the data-key > generate command
var dataKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a data encryption key",
	Long: `
Generate a data encryption key

Use this command to generate a new Base64-encoded 256 bit master key. Once
generated, this key should be placed into the environment of the Ciphermind
server. All secrets stored in the database are encrypted under keys derived
from it.

Example:

$ export CIPHERMIND_DATA_KEY="$(ciphermindctl data-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		bytes, err := crypto.RandomBytes(crypto.KeySize)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to generate key:", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(bytes))
	},
}

func init() {
	dataKeyCmd.AddCommand(dataKeyGenerateCmd)
}
