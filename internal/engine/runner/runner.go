// Package runner implements the sequential target execution engine.
package runner

import (
	"context"
	"sync"

	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/mvoegeli/mach/internal/core/ports"
	"go.trai.ch/zerr"
)

// TargetStatus represents the status of a target within one invocation.
type TargetStatus string

const (
	// StatusPending indicates the target is waiting to be executed.
	StatusPending TargetStatus = "Pending"
	// StatusRunning indicates the target is currently executing.
	StatusRunning TargetStatus = "Running"
	// StatusCompleted indicates the target finished successfully.
	StatusCompleted TargetStatus = "Completed"
	// StatusFailed indicates the target execution failed.
	StatusFailed TargetStatus = "Failed"
)

// Runner executes resolved targets strictly in sequence: one subprocess at a
// time, each target at most once per invocation, stopping at the first
// failure.
type Runner struct {
	executor ports.Executor
	logger   ports.Logger

	mu     sync.RWMutex
	status map[domain.InternedString]TargetStatus
}

// NewRunner creates a new Runner with the given executor.
func NewRunner(executor ports.Executor, logger ports.Logger) *Runner {
	return &Runner{
		executor: executor,
		logger:   logger,
		status:   make(map[domain.InternedString]TargetStatus),
	}
}

// Run resolves the requested targets against the registry and executes the
// resulting order. Resolution failures return before any command executes.
// A command failure halts the invocation; later targets stay pending.
func (r *Runner) Run(ctx context.Context, registry *domain.Registry, names []string) error {
	order, err := registry.ResolveAll(names)
	if err != nil {
		return err
	}

	r.initStatuses(order)

	for i := range order {
		target := &order[i]

		if err := ctx.Err(); err != nil {
			r.setStatus(target.Name, StatusFailed)
			return zerr.With(zerr.Wrap(err, "invocation canceled"), "target", target.Name.String())
		}

		r.setStatus(target.Name, StatusRunning)
		r.logger.Info("running target " + target.Name.String())

		if err := r.executor.Execute(ctx, target); err != nil {
			r.setStatus(target.Name, StatusFailed)
			return zerr.With(zerr.Wrap(err, "target failed"), "target", target.Name.String())
		}

		r.setStatus(target.Name, StatusCompleted)
	}

	return nil
}

// Status reports the status of a target in the most recent invocation.
// Targets never part of an invocation report StatusPending.
func (r *Runner) Status(name string) TargetStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.status[domain.NewInternedString(name)]; ok {
		return s
	}
	return StatusPending
}

func (r *Runner) initStatuses(order []domain.Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = make(map[domain.InternedString]TargetStatus, len(order))
	for _, target := range order {
		r.status[target.Name] = StatusPending
	}
}

func (r *Runner) setStatus(name domain.InternedString, status TargetStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = status
}
