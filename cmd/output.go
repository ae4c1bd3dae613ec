package cmd

import (
	"errors"

	"github.com/sheetpub/sheetpub/client"
	"github.com/sheetpub/sheetpub/config"
	"github.com/sheetpub/sheetpub/sheet"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitConfig   = 2
	ExitAuth     = 3
	ExitTransfer = 4
	ExitInput    = 5
)

// ExitError carries the exit code for a failed command. Err, when set, is
// the message to print.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// classify maps a command error to an *ExitError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: exitCode(err), Err: err}
}

func exitCode(err error) int {
	var missing *config.MissingError
	switch {
	case errors.As(err, &missing):
		return ExitConfig
	case errors.Is(err, client.ErrAuthentication):
		return ExitAuth
	case errors.Is(err, client.ErrTransfer):
		return ExitTransfer
	case errors.Is(err, sheet.ErrNotFound),
		errors.Is(err, sheet.ErrUnsupportedFormat),
		errors.Is(err, sheet.ErrUnreadable):
		return ExitInput
	default:
		return ExitUsage
	}
}
