package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guillaumearm/create-node-project/internal/branding"
	"github.com/guillaumearm/create-node-project/internal/config"
	"github.com/guillaumearm/create-node-project/internal/logging"
	"github.com/guillaumearm/create-node-project/internal/pkgmgr"
	"github.com/guillaumearm/create-node-project/internal/project"
	"github.com/guillaumearm/create-node-project/internal/scaffold"
	"github.com/guillaumearm/create-node-project/internal/shell"
	"github.com/guillaumearm/create-node-project/internal/template"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectType      string
	skipInstall      bool
	cleanupOnFailure bool
	verbose          bool
)

func init() {
	rootCmd.Flags().StringVarP(&projectType, "type", "t", string(project.DefaultType), "Project type: "+typeList())
	rootCmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Do not install dependencies or run the formatter")
	rootCmd.Flags().BoolVar(&cleanupOnFailure, "cleanup-on-failure", false, "Remove the project directory if a step fails")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug diagnostics")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <path> [name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` clones the project template at the branch matching --type into <path>,
personalizes its package.json, installs dependencies and formats the sources.

The project name defaults to the last segment of <path>.`,
	Example: `  ` + branding.CLIName() + ` my-app
  ` + branding.CLIName() + ` ./tools/x tool --type cli`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	config.Load()
	settings := config.Current()
	logger := logging.New(cmd.ErrOrStderr(), verbose)

	name := ""
	if len(args) > 1 {
		name = args[1]
	}
	opts, err := project.Resolve(args[0], name, projectType)
	if err != nil {
		return err
	}

	runner := &shell.Runner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	cloner, err := template.NewCloner(settings.GitBackend, runner, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("configuring %s: %w", config.KeyGitBackend, err)
	}
	mgr, err := pkgmgr.New(settings.PackageManager, runner)
	if err != nil {
		return fmt.Errorf("configuring %s: %w", config.KeyPackageManager, err)
	}

	s := &scaffold.Scaffolder{
		Cloner:  cloner,
		Manager: mgr,
		Out:     cmd.OutOrStdout(),
		Log:     logger,
		Config: scaffold.Config{
			TemplateRepo:     settings.TemplateRepo,
			DefaultBranch:    settings.DefaultBranch,
			FormatScript:     settings.FormatScript,
			Strip:            settings.Strip,
			SkipInstall:      skipInstall,
			CleanupOnFailure: cleanupOnFailure || settings.CleanupOnFailure,
		},
	}

	logger.WithField("dir", opts.Dir).WithField("name", opts.Name).WithField("type", opts.Type).Debug("creating project")

	res, err := s.Run(cmd.Context(), opts)
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	if err != nil {
		return createError(err, logger)
	}

	scaffold.PrintSummary(cmd.OutOrStdout(), res, mgr.Name)
	return nil
}

func typeList() string {
	names := make([]string, 0, len(project.Types))
	for _, t := range project.Types {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return asExitError(err)
	}
	return nil
}
