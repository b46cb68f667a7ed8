package cli

import (
	"errors"

	"github.com/vburojevic/deskbell/internal/actuator"
	"github.com/vburojevic/deskbell/internal/logtail"
	"github.com/vburojevic/deskbell/internal/output"
)

// Error codes
const (
	codeLogNotFound  = "LOG_NOT_FOUND"
	codeLogGone      = "LOG_GONE"
	codeWatchFailed  = "WATCH_FAILED"
	codeInvalidInput = "INVALID_INPUT"
	codeSendFailed   = "SEND_FAILED"
	codeSendTimeout  = "SEND_TIMEOUT"
)

// outputErrorCommon normalizes error emission across commands: NDJSON errors
// go to stdout so consumers of the event stream see them, text errors go to
// stderr.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	cliErr := &CLIError{Code: code, Message: message}
	if len(hint) > 0 {
		cliErr.Hint = hint[0]
	}
	if globals == nil {
		return cliErr
	}
	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, cliErr.Hint)
	} else {
		_ = output.NewTextWriter(globals.Stderr, output.IsTerminal(globals.Stderr)).WriteError(code, message, cliErr.Hint)
	}
	return cliErr
}

// errorCode picks the code for a failure of the watch loop
func errorCode(err error) string {
	switch {
	case errors.Is(err, logtail.ErrLogGone):
		return codeLogGone
	case errors.Is(err, actuator.ErrTimeout):
		return codeSendTimeout
	default:
		return codeWatchFailed
	}
}
