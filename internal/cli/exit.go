package cli

import "fmt"

const (
	// ExitCodeTreeOutput covers usage errors, tree failures and JSON artifact write failures.
	ExitCodeTreeOutput = 1
	// ExitCodeSuggestionService covers a missing credential and any failed suggestion request.
	ExitCodeSuggestionService = 2
	// ExitCodeSuggestionsOutput covers a failed write of the suggestions artifact.
	ExitCodeSuggestionsOutput = 3
)

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code int
	Err  error
}

func newExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (exitError *ExitError) Error() string {
	if exitError.Err == nil {
		return fmt.Sprintf("exit status %d", exitError.Code)
	}
	return exitError.Err.Error()
}

func (exitError *ExitError) Unwrap() error {
	return exitError.Err
}
