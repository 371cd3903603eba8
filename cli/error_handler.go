package cli

import (
	"fmt"
	"os"

	"github.com/hadSHOT/hooklint/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "%s No hook configuration found. Run 'hooklint init' to create one.\n", styleError.Render("✗"))
		return err

	case errors.ErrCodeHookNotFound:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "%s Hook '%v' is not provided by %v\n",
				styleError.Render("✗"), hookErr.Details["hook"], hookErr.Details["repo"])
			if available, ok := hookErr.Details["available"].([]string); ok && len(available) > 0 {
				fmt.Fprintf(os.Stderr, "Available hooks: %v\n", available)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%s %v\n", styleError.Render("✗"), err)
		}
		return err

	case errors.ErrCodeRepoUnreachable:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "%s Repository %v is unreachable. Check the URL and your network.\n",
				styleError.Render("✗"), hookErr.Details["repo"])
		}
		return err

	case errors.ErrCodeRevNotFound:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "%s Revision '%v' does not exist in %v. Run 'hooklint autoupdate' to re-pin.\n",
				styleError.Render("✗"), hookErr.Details["rev"], hookErr.Details["repo"])
		}
		return err

	case errors.ErrCodeGitNotInstalled, errors.ErrCodeCommandNotFound:
		fmt.Fprintf(os.Stderr, "%s Required command not found. Make sure git is installed.\n", styleError.Render("✗"))
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "%s Error: %v\n", styleError.Render("✗"), err)

		// If verbose mode, show full error details
		if h.Verbose {
			if hookErr, ok := err.(*errors.HookError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hookErr.ToJSON())
			}
		}
		return err
	}
}
