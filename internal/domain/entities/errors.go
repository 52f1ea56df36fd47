package entities

import (
	"errors"
	"fmt"
)

// Failure kinds. Every one of them ends the run.
var (
	ErrMissingPrerequisite  = errors.New("missing prerequisite")
	ErrDownloadFailure      = errors.New("download failed")
	ErrInstallVerification  = errors.New("install verification failed")
	ErrConfigurationMissing = errors.New("configuration file missing")
)

// StepError ties a failure kind to the step that produced it
type StepError struct {
	Step string
	Kind error
	Err  error
}

// NewStepError creates a StepError
func NewStepError(step string, kind, err error) *StepError {
	return &StepError{Step: step, Kind: kind, Err: err}
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Step, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Step, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
