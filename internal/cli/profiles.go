package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tessro/ffl/internal/config"
	"github.com/tessro/ffl/internal/profile"
)

var profilesOutput string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List browser profiles and their configured modes",
	Long:  "List the profiles in profiles.ini with the mode configured for each, without starting the launcher.",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

// profileView is one row of the profiles listing.
type profileView struct {
	Name string `yaml:"name"`
	Mode string `yaml:"mode"`
	Dir  string `yaml:"dir"`
	Lock string `yaml:"lock"`
}

func runProfiles(cmd *cobra.Command, args []string) error {
	if profilesOutput != "table" && profilesOutput != "yaml" {
		return fmt.Errorf("unknown output format %q (want table or yaml)", profilesOutput)
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	profiles, err := profile.LoadRegistry(settings.Browser.Home)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	records, err := profile.LoadModes(settings.Modes.Path)
	if err != nil {
		return fmt.Errorf("load modes: %w", err)
	}
	modes := profile.ResolveModes(profiles, records)

	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView{
			Name: p.Name,
			Mode: modes[p.Name].String(),
			Dir:  p.Dir(settings.Browser.Home),
			Lock: p.LockPath(settings.Browser.Home),
		})
	}

	if profilesOutput == "yaml" {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("encode profiles: %w", err)
		}
		return enc.Close()
	}
	writeProfilesTable(cmd.OutOrStdout(), views)
	return nil
}

func writeProfilesTable(out io.Writer, views []profileView) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROFILE\tMODE\tDIR")
	for _, v := range views {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, v.Mode, v.Dir)
	}
	_ = w.Flush()
}

func init() {
	profilesCmd.Flags().StringVarP(&profilesOutput, "output", "o", "table", "output format: table or yaml")
	rootCmd.AddCommand(profilesCmd)
}
