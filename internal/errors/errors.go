package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/fivemin/internal/logger"
	"github.com/julianstephens/fivemin/internal/media"
	"github.com/julianstephens/fivemin/internal/migration"
)

// ExitInterrupted is the exit code for a command stopped by Ctrl-C.
const ExitInterrupted = 130

var hints = []struct {
	target error
	hint   string
}{
	{migration.ErrSchemaTooNew, "upgrade fivemin or restore an older database with 'fivemin backup restore'"},
	{media.ErrNotFound, "check the media host with 'fivemin settings --list' and 'fivemin doctor'"},
	{media.ErrTooLarge, "the media host returned an unexpectedly large file"},
}

// Format formats an error message with a consistent "Error: " prefix and,
// for known failures, a hint on the next line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			msg += "\nHint: " + h.hint
			break
		}
	}
	return msg
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return 1
	}
}

// Fatal logs err, prints it to stderr and exits with ExitCode(err).
// A nil error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(ExitCode(err))
}
