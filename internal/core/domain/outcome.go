package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// ExitStatus maps the terminal error of an invocation to the process exit
// code: 0 on success, the failing command's own exit status when one is
// recorded, and 1 for resolution or configuration failures (and for commands
// terminated by a signal, which carry no positive status).
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := findExitCode(err); ok && code > 0 {
		return code
	}
	return 1
}

// findExitCode walks the error tree looking for the "exit_code" metadata
// attached by the shell executor. errors.Join produces multi-child nodes, so
// a plain Unwrap loop is not enough.
func findExitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		if code, ok := zErr.Metadata()["exit_code"].(int); ok {
			return code, true
		}
	}

	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		for _, child := range unwrapped.Unwrap() {
			if code, ok := findExitCode(child); ok {
				return code, true
			}
		}
	case interface{ Unwrap() error }:
		return findExitCode(unwrapped.Unwrap())
	}
	return 0, false
}
