package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guillaumearm/create-node-project/internal/config"
	"github.com/guillaumearm/create-node-project/internal/doctor"
)

var checkManifest string

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "manifest", "", "Validate a package.json and check node against its engines.node")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools needed to create projects",
	Long: `Check that git, the configured package manager and node are installed,
and that the node version satisfies the project's engines.node constraint.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		settings := config.Current()

		c := &doctor.Checker{
			Out:            cmd.OutOrStdout(),
			PackageManager: settings.PackageManager,
		}
		report := c.Run(cmd.Context(), doctor.Options{Manifest: checkManifest})
		if !report.OK() {
			return fmt.Errorf("doctor found %d problem(s)", report.Problems)
		}
		return nil
	},
}
