// Package errors renders command failures for the terminal and maps them
// to exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/hedaya/internal/keyring"
	"github.com/julianstephens/hedaya/internal/logger"
	"github.com/julianstephens/hedaya/internal/storage"
	"github.com/julianstephens/hedaya/internal/tracker"
)

// Exit codes. Input errors are the user's to fix; everything else is a
// runtime failure.
const (
	ExitFailure = 1
	ExitInput   = 2
)

var inputErrors = []error{
	tracker.ErrInvalidDateKey,
	tracker.ErrUnknownPrayer,
	tracker.ErrUnknownBranch,
	tracker.ErrNoSunnah,
	tracker.ErrUnsupportedAction,
	tracker.ErrUnknownElement,
	tracker.ErrFutureDate,
	tracker.ErrMercyBudgetExceeded,
	storage.ErrInvalidConnectionString,
	storage.ErrEmbeddedCredentials,
}

var hints = []struct {
	err  error
	hint string
}{
	{storage.ErrNotInitialized, "Run 'hedaya init' to create the database."},
	{storage.ErrEmbeddedCredentials, "Store the password with 'hedaya keyring set' or HEDAYA_DB_CONNECTION."},
	{tracker.ErrMercyBudgetExceeded, "Disable strict mode with 'hedaya settings set strict_mercy false' to record it anyway."},
	{keyring.ErrNotFound, "Save a connection string first with 'hedaya keyring set'."},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns a suggested next step for known errors, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

func ExitCode(err error) int {
	for _, target := range inputErrors {
		if stderrors.Is(err, target) {
			return ExitInput
		}
	}
	return ExitFailure
}

// Report writes the formatted error and its hint to w.
func Report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(w, "  "+hint)
	}
}

// Fatal logs err, reports it on stderr and exits. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	Report(os.Stderr, err)
	os.Exit(ExitCode(err))
}
