// Package domain contains the core domain models for the target registry and
// its prerequisite graph.
package domain

import (
	"go.trai.ch/zerr"
)

// Registry is the immutable collection of all known targets for a process.
// It preserves declaration order for listing and is built once at startup by
// the configuration loader.
type Registry struct {
	targets       map[InternedString]Target
	order         []InternedString
	defaultTarget InternedString
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[InternedString]Target),
	}
}

// AddTarget adds a target to the registry.
// It returns an error if a target with the same name already exists.
func (r *Registry) AddTarget(t *Target) error {
	if _, exists := r.targets[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, "cannot register target"), "target_name", t.Name.String())
	}
	r.targets[t.Name] = *t
	r.order = append(r.order, t.Name)
	return nil
}

// SetDefault records the target to run when an invocation names none.
// The name must already be registered.
func (r *Registry) SetDefault(name string) error {
	interned := NewInternedString(name)
	if _, exists := r.targets[interned]; !exists {
		return zerr.With(zerr.Wrap(ErrUnknownTarget, "invalid default target"), "default", name)
	}
	r.defaultTarget = interned
	return nil
}

// Default returns the configured default target name, or "" if none is set.
func (r *Registry) Default() string {
	return r.defaultTarget.String()
}

// List returns every target in declaration order.
// It never fails; an empty registry yields an empty slice.
func (r *Registry) List() []Target {
	out := make([]Target, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.targets[name])
	}
	return out
}

// Resolve computes the execution order for a single requested target: a
// depth-first traversal of the prerequisite relation where every prerequisite
// appears before its dependent and each target appears exactly once, at the
// position of its first encounter.
func (r *Registry) Resolve(name string) ([]Target, error) {
	return r.ResolveAll([]string{name})
}

// ResolveAll resolves several requested targets into one execution order,
// sharing the visited set so a target reachable from more than one request
// still appears exactly once.
func (r *Registry) ResolveAll(names []string) ([]Target, error) {
	res := &resolution{
		registry: r,
		visited:  make(map[InternedString]int),
	}
	for _, name := range names {
		interned := NewInternedString(name)
		if _, exists := r.targets[interned]; !exists {
			return nil, zerr.With(zerr.Wrap(ErrUnknownTarget, "resolution failed"), "target", name)
		}
		if res.visited[interned] != 0 {
			// Already reached through an earlier request.
			continue
		}
		if err := res.visit(interned); err != nil {
			return nil, err
		}
	}
	return res.order, nil
}

// resolution holds the state of one depth-first traversal.
// visited uses the usual three colors: 0 unvisited, 1 on the active stack,
// 2 done.
type resolution struct {
	registry *Registry
	visited  map[InternedString]int
	path     []InternedString
	order    []Target
}

func (res *resolution) visit(name InternedString) error {
	res.visited[name] = 1
	res.path = append(res.path, name)

	target, exists := res.registry.targets[name]
	if !exists {
		err := zerr.With(zerr.Wrap(ErrUnknownTarget, "resolution failed"), "target", name.String())
		if len(res.path) > 1 {
			err = zerr.With(err, "required_by", res.path[len(res.path)-2].String())
		}
		return err
	}

	for _, prereq := range target.Prerequisites {
		switch res.visited[prereq] {
		case 1:
			return res.cycleError(prereq)
		case 0:
			if err := res.visit(prereq); err != nil {
				return err
			}
		}
	}

	res.visited[name] = 2
	res.path = res.path[:len(res.path)-1]
	res.order = append(res.order, target)
	return nil
}

// cycleError constructs an error carrying the cycle path as metadata,
// starting at the revisited node.
func (res *resolution) cycleError(dep InternedString) error {
	startIdx := 0
	for i, node := range res.path {
		if node == dep {
			startIdx = i
			break
		}
	}

	cyclePath := ""
	for i := startIdx; i < len(res.path); i++ {
		cyclePath += res.path[i].String() + " -> "
	}
	cyclePath += dep.String()

	return zerr.With(zerr.Wrap(ErrCycleDetected, "resolution failed"), "cycle", cyclePath)
}
