package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pairCmd = &cobra.Command{
	Use:   "pair [code]",
	Short: "Exchange a one-time pair code for an API token",
	Long: `Exchange a one-time pair code from the Store-3D website for a
long-lived API token. The token is saved to the config file and the pair
code is cleared. Without an argument the code configured via
"config set pair-code" is used.

Examples:
  store3d-bridge pair A1B2-C3D4
  store3d-bridge pair`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPair,
}

func init() {
	rootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	code := ""
	if len(args) == 1 {
		code = args[0]
	}

	if err := jobRunner.Pair(cmd.Context(), code); err != nil {
		return err
	}
	fmt.Println("Pairing successful. API token saved.")
	return nil
}
