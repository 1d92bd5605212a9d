package cli

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/guillaumearm/create-node-project/internal/project"
	"github.com/guillaumearm/create-node-project/internal/scaffold"
	"github.com/guillaumearm/create-node-project/internal/template"
)

const exitCodeFailure = 1

// exitError carries the message printed on stderr and the process exit code.
type exitError struct {
	code  int
	msg   string
	cause error
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }
func (e *exitError) Unwrap() error { return e.cause }

// createError turns a pipeline failure into its user-facing diagnostic.
func createError(err error, logger log.FieldLogger) error {
	var stepErr *scaffold.StepError
	if !errors.As(err, &stepErr) {
		return err
	}

	switch {
	case errors.Is(err, project.ErrDestinationExists):
		return &exitError{code: exitCodeFailure, msg: fmt.Sprintf("Error: '%s' already exists!", stepErr.Dir), cause: err}
	case errors.Is(err, template.ErrClone):
		logger.WithError(stepErr.Err).Debug("clone failed")
		return &exitError{code: exitCodeFailure, msg: "Error: cannot git clone!", cause: err}
	default:
		return &exitError{code: exitCodeFailure, msg: "Error: " + err.Error(), cause: err}
	}
}

func asExitError(err error) error {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee
	}
	return &exitError{code: exitCodeFailure, msg: "Error: " + err.Error(), cause: err}
}
