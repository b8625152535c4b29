package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/vibeos/vibeos/internal/logger"
)

// Error taxonomy for the sync core. Remote-call failures are caught at the
// coordinator/bootstrap boundary and converted into one of these; they
// never propagate as unhandled faults.
var (
	// ErrAuthenticationRequired means no credential was available (or it
	// was rejected) when one was needed. Treated as a mode transition to
	// Unauthenticated, surfaced to the user only as a login prompt.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrRemoteUnavailable means a network or backend failure. Reported
	// once; local state remains consistent and nothing is retried
	// automatically.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrMalformedImport means an import payload could not be parsed. The
	// existing state is left untouched.
	ErrMalformedImport = errors.New("malformed import document")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
