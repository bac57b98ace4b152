package cli

import (
	"github.com/spf13/cobra"

	"github.com/soul-abducter-glitch/Store-3D/internal/ui"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Open the interactive bridge panel",
	Long: `Open a terminal panel showing the configured server, cached job list,
and one-key actions: pair, test connection, fetch jobs, import latest.`,
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

func runPanel(cmd *cobra.Command, args []string) error {
	return ui.Run(ui.Options{
		Context:    cmd.Context(),
		ConfigPath: configPath,
		Runner:     jobRunner,
		Store:      store,
	})
}
