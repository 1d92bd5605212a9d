package scaffold

import "fmt"

// StepError reports the pipeline step that failed and the project it was
// working on.
type StepError struct {
	Step string
	Dir  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
