package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/ffl/internal/config"
	"github.com/tessro/ffl/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long: "Print the settings ffl would run with, after applying config.toml and\n" +
		"FFL_* environment overrides, as TOML.",
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := paths.SettingsPath()
	if err != nil {
		return fmt.Errorf("locate settings: %w", err)
	}
	settings, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", path)
	if err := settings.WriteTOML(out); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
