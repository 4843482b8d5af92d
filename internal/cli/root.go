// Package cli implements the ffl command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/ffl/internal/paths"
)

// fflDir is the global --ffl-dir flag value.
var fflDir string

var rootCmd = &cobra.Command{
	Use:   "ffl",
	Short: "Browser profile activity keeper",
	Long: "ffl keeps Firefox profiles in their configured mode (auto, on, off, suspend, asis),\n" +
		"launching, suspending, resuming and closing them as focus moves between windows.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set FFL_DIR so every path helper sees the override.
		if fflDir != "" {
			if err := os.Setenv(paths.EnvFflDir, fflDir); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: runLauncher,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fflDir, "ffl-dir", "", "base directory for ffl data (overrides ~/.ffl)")
	addRunFlags(rootCmd.Flags())
}

// Execute runs the root command. ctx is cancelled on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
