package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/guillaumearm/create-node-project/internal/logging"
	"github.com/guillaumearm/create-node-project/internal/manifest"
	"github.com/guillaumearm/create-node-project/internal/project"
	"github.com/guillaumearm/create-node-project/internal/template"
)

// Pipeline steps, in execution order.
const (
	StepCheck    = "check"
	StepClone    = "clone"
	StepSanitize = "sanitize"
	StepManifest = "manifest"
	StepInstall  = "install"
	StepFormat   = "format"
)

// Installer installs dependencies and runs package.json scripts.
type Installer interface {
	Install(ctx context.Context, dir string) error
	RunScript(ctx context.Context, dir, script string) error
}

// Config holds the settings of a run that do not come from arguments.
type Config struct {
	TemplateRepo     string
	DefaultBranch    string
	FormatScript     string
	Strip            []string
	SkipInstall      bool
	CleanupOnFailure bool
}

// Scaffolder creates projects from the template repository.
type Scaffolder struct {
	Cloner  template.Cloner
	Manager Installer
	Out     io.Writer // confirmation lines; defaults to os.Stdout
	Log     log.FieldLogger
	Config  Config
}

// Result records what a run did, including on failure.
type Result struct {
	Dir    string
	Name   string
	Type   project.Type
	Branch string

	Steps     []string // completed steps
	Stripped  []string // paths removed by strip patterns
	Warnings  []string // manifest validation issues
	CleanedUp bool     // destination removed after a failure
}

type step struct {
	name string
	run  func(ctx context.Context, opts project.Options, res *Result) error
}

// Run executes the pipeline for opts. On failure the returned error is a
// *StepError and the Result holds the steps completed so far.
func (s *Scaffolder) Run(ctx context.Context, opts project.Options) (*Result, error) {
	logger := s.logger()

	res := &Result{
		Dir:    opts.Dir,
		Name:   opts.Name,
		Type:   opts.Type,
		Branch: opts.Type.Branch(s.Config.DefaultBranch),
	}

	if err := project.CheckDestination(opts.Dir); err != nil {
		return res, &StepError{Step: StepCheck, Dir: opts.Dir, Err: err}
	}
	res.Steps = append(res.Steps, StepCheck)

	if !opts.Type.Known() {
		logger.WithField("type", opts.Type).Warn("unknown project type, cloning a branch of the same name")
	}

	steps := []step{
		{StepClone, s.clone},
		{StepSanitize, s.sanitize},
		{StepManifest, s.rewriteManifest},
	}
	if s.Config.SkipInstall {
		logger.Debug("skipping install and format")
	} else {
		steps = append(steps, step{StepInstall, s.install}, step{StepFormat, s.format})
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return res, s.fail(logger, res, st.name, err)
		}
		logger.WithField("step", st.name).Debug("starting")
		if err := st.run(ctx, opts, res); err != nil {
			return res, s.fail(logger, res, st.name, err)
		}
		res.Steps = append(res.Steps, st.name)
	}

	return res, nil
}

// fail wraps err for step and applies the cleanup policy. The destination
// check has passed by then, so anything at res.Dir was created by this run.
func (s *Scaffolder) fail(logger log.FieldLogger, res *Result, stepName string, err error) error {
	logger.WithField("step", stepName).WithError(err).Debug("step failed")

	if s.Config.CleanupOnFailure {
		if rmErr := os.RemoveAll(res.Dir); rmErr != nil {
			logger.WithError(rmErr).Warnf("could not remove %s", res.Dir)
		} else {
			res.CleanedUp = true
			logger.Debugf("removed partial project at %s", res.Dir)
			fmt.Fprintf(s.out(), "> Removed partial project at %s\n", res.Dir)
		}
	}

	return &StepError{Step: stepName, Dir: res.Dir, Err: err}
}

func (s *Scaffolder) clone(ctx context.Context, opts project.Options, res *Result) error {
	return s.Cloner.Clone(ctx, template.CloneRequest{
		URL:    s.Config.TemplateRepo,
		Branch: res.Branch,
		Dest:   opts.Dir,
	})
}

func (s *Scaffolder) sanitize(_ context.Context, opts project.Options, res *Result) error {
	if err := template.RemoveVCSMetadata(opts.Dir); err != nil {
		return err
	}
	removed, err := template.Strip(opts.Dir, s.Config.Strip)
	res.Stripped = removed
	for _, rel := range removed {
		s.logger().WithField("path", rel).Debug("stripped")
	}
	return err
}

func (s *Scaffolder) rewriteManifest(_ context.Context, opts project.Options, res *Result) error {
	m, err := manifest.RewriteFile(filepath.Join(opts.Dir, manifest.FileName), opts.Name, opts.Type)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out(), "> Updated %s for project '%s'\n", manifest.FileName, opts.Name)

	valResult, err := manifest.Validate(m, opts.Type)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Could not validate manifest: %v", err))
		return nil
	}
	for _, issue := range valResult.Issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		res.Warnings = append(res.Warnings, msg)
	}
	return nil
}

func (s *Scaffolder) install(ctx context.Context, opts project.Options, _ *Result) error {
	return s.Manager.Install(ctx, opts.Dir)
}

func (s *Scaffolder) format(ctx context.Context, opts project.Options, _ *Result) error {
	return s.Manager.RunScript(ctx, opts.Dir, s.Config.FormatScript)
}

func (s *Scaffolder) logger() log.FieldLogger {
	if s.Log == nil {
		return logging.Discard()
	}
	return s.Log
}

func (s *Scaffolder) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}
