// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/mvoegeli/mach/internal/core/domain"
)

// Executor defines the interface for executing a target's commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the target's commands in order, one subprocess at a time,
	// blocking on each until it terminates. The subprocess inherits the
	// invoking process's working directory and environment, and its output
	// streams live to the executor's writers.
	//
	// Execution stops at the first command that exits nonzero; the returned
	// error carries the command text and exit status as metadata.
	Execute(ctx context.Context, target *domain.Target) error
}
