package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/ffl/internal/daemon"
	"github.com/tessro/ffl/internal/paths"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a launcher is running",
	Long:  "Report whether an ffl launcher holds the single-instance lock, and its PID.",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	lockPath := paths.LockPath()
	running, pid := daemon.IsRunning(lockPath)
	if !running {
		fmt.Fprintln(cmd.OutOrStdout(), "🦊 ffl is not running")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🦊 ffl is running (pid %d)\n", pid)
	fmt.Fprintf(cmd.OutOrStdout(), "   Lock: %s\n", lockPath)
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
