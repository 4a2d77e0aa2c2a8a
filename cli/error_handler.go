package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/git-log-pretty/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message tailored to the error code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	e, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeRepoNotFound:
		fmt.Fprintf(h.Out, "❌ Not a git repository (or any parent up to /): %v\n", e.Details["dir"])

	case errors.ErrCodeRefNotFound:
		fmt.Fprintf(h.Out, "❌ Reference '%v' not found\n", e.Details["ref"])
		fmt.Fprintf(h.Out, "Pass an existing branch, tag or commit with --base/--head, or set base_branch in .git-log-pretty.yml.\n")

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration file not found: %v\n", e.Details["path"])

	case errors.ErrCodeConfigInvalid, errors.ErrCodeInvalidInput:
		fmt.Fprintf(h.Out, "❌ %s\n", e.Message)
		if e.Cause != nil {
			fmt.Fprintf(h.Out, "%v\n", e.Cause)
		}
		if path, ok := e.Details["path"]; ok {
			fmt.Fprintf(h.Out, "In %v\n", path)
		}

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && e != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
	}
	return err
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
