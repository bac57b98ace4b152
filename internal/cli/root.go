// Package cli provides the command-line interface for the Store-3D bridge.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soul-abducter-glitch/Store-3D/internal/config"
	"github.com/soul-abducter-glitch/Store-3D/internal/importer"
	"github.com/soul-abducter-glitch/Store-3D/internal/runner"
	"github.com/soul-abducter-glitch/Store-3D/internal/state"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configPath string
	libraryDir string
	verbose    bool

	// Shared between commands, built in PersistentPreRunE.
	logger     *slog.Logger
	logCleanup func() error
	store      *state.Store
	jobRunner  *runner.Runner
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "store3d-bridge",
	Short: "Bridge between a local 3D tool and the Store-3D job queue",
	Long: `store3d-bridge connects a local 3D-content-creation workflow to the
Store-3D job queue. It pairs with the server using a one-time code, polls
for queued model-import jobs, downloads their payloads, imports them, and
reports the outcome back.

Without a host 3D tool attached, imported models are filed into a local
library directory and grouped into collection subdirectories.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		// The panel owns the terminal; keep stderr quiet there.
		logger, logCleanup = config.SetupLogger(level, cmd.Name() == "panel")

		root := libraryDir
		if root == "" {
			root = defaultLibraryDir()
		}
		host, err := importer.NewFileHost(root)
		if err != nil {
			return fmt.Errorf("init model library: %w", err)
		}

		store = &state.Store{}
		jobRunner = runner.New(configPath, store, importer.NewPipeline(host, host), logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute runs the command tree under the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&libraryDir, "library", "", "model library directory (default ~/.local/share/store3d-bridge/models)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func defaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "store3d-models"
	}
	return filepath.Join(home, ".local", "share", "store3d-bridge", "models")
}
