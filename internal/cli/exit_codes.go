package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
)

// Exit codes for the chlog CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a check failed or an entry was dropped
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or an unknown version
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates a required file or repository is missing
	ExitMissingDependencies = 4
)

// ExitError carries a specific exit code. Its message has already been
// printed by the command that returned it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to a process exit code. An ExitError carries its own
// code; CLIErrors map by category: Argument -> 3, Repository -> 4.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Repository:
			return ExitMissingDependencies
		}
	}
	return ExitValidationFailed
}
