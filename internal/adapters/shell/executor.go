// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/mvoegeli/mach/internal/core/ports"
	"go.trai.ch/zerr"
)

// shellBinary interprets each command line. Commands are declared as whole
// shell lines in the machfile, not argv vectors.
const shellBinary = "sh"

// Executor implements ports.Executor using os/exec.
//
// Each command runs as an independent subprocess inheriting the invoking
// process's working directory and environment. Output is streamed live to the
// executor's writers, not buffered.
type Executor struct {
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates a new Executor streaming to os.Stdout and os.Stderr.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects the subprocess output streams. Used for testing.
func (e *Executor) SetOutput(stdout, stderr io.Writer) {
	e.stdout = stdout
	e.stderr = stderr
}

// Execute runs the target's commands in declaration order, blocking on each
// subprocess until it terminates. It stops at the first nonzero exit and
// returns an error carrying the command text and exit status as metadata.
// A target with no commands is a no-op.
func (e *Executor) Execute(ctx context.Context, target *domain.Target) error {
	for _, line := range target.Commands {
		e.logger.Info(line)

		cmd := exec.CommandContext(ctx, shellBinary, "-c", line) //nolint:gosec // user provided command

		// Env and Dir stay nil: the subprocess inherits the runner's
		// environment and working directory.
		cmd.Stdout = e.stdout
		cmd.Stderr = e.stderr

		if err := cmd.Run(); err != nil {
			exitCode := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}

			failure := zerr.Wrap(err, domain.ErrCommandFailed.Error())
			failure = zerr.With(failure, "command", line)
			failure = zerr.With(failure, "exit_code", exitCode)
			return errors.Join(domain.ErrCommandFailed, failure)
		}
	}

	return nil
}
