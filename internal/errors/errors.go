package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
)

// hinted pairs an error with a suggestion shown to the user on the next line.
type hinted struct {
	err  error
	hint string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }

// WithHint attaches a user-facing suggestion to err. A nil err stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hint: hint}
}

// Hint returns the suggestion attached anywhere in err's chain, or "".
func Hint(err error) string {
	var h *hinted
	if stderrors.As(err, &h) {
		return h.hint
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by an indented hint when one is attached.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n       " + hint
	}
	return msg
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
