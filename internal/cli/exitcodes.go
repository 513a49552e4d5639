package cli

import (
	"errors"

	"github.com/yaklabco/solidhunter/pkg/runner"
)

// Exit codes for solidhunter.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors, files that
	// failed to parse, or warnings in strict mode.
	ExitLintErrors = 1

	// ExitConfigError indicates an unusable configuration or invalid flags.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError attaches an exit code to a command failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// configError marks err as a configuration failure.
func configError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrLintIssuesFound) {
		return ExitLintErrors
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result.HasFailures(strict) {
		return ExitLintErrors
	}
	return ExitSuccess
}
