package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guillaumearm/create-node-project/internal/branding"
	"github.com/guillaumearm/create-node-project/internal/config"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version and template source as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is the --json payload.
type versionInfo struct {
	Version        string `json:"version"`
	Commit         string `json:"commit"`
	Date           string `json:"date"`
	TemplateRepo   string `json:"template_repo"`
	DefaultBranch  string `json:"default_branch"`
	GitBackend     string `json:"git_backend"`
	PackageManager string `json:"package_manager"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information and the template in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		config.Load()
		settings := config.Current()

		if versionJSON {
			data, err := json.MarshalIndent(versionInfo{
				Version:        buildVersion,
				Commit:         buildCommit,
				Date:           buildDate,
				TemplateRepo:   settings.TemplateRepo,
				DefaultBranch:  settings.DefaultBranch,
				GitBackend:     settings.GitBackend,
				PackageManager: settings.PackageManager,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		fmt.Fprintf(out, "template: %s (base branch %s, %s backend)\n", settings.TemplateRepo, settings.DefaultBranch, settings.GitBackend)
		return nil
	},
}
