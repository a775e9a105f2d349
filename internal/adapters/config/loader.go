// Package config provides the configuration loader for mach.
package config

import (
	"errors"
	"os"
	"regexp"

	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/mvoegeli/mach/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var validTargetNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML machfile.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the machfile at the given path and returns the target registry.
// The registry is fully validated for name and prerequisite consistency;
// cycle detection happens at resolution time.
func (l *Loader) Load(path string) (*domain.Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, errors.Join(domain.ErrConfigReadFailed,
			zerr.With(zerr.Wrap(err, "failed to read machfile"), "path", path))
	}

	var machfile Machfile
	if err := yaml.Unmarshal(data, &machfile); err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed,
			zerr.With(zerr.Wrap(err, "failed to parse machfile"), "path", path))
	}

	return l.buildRegistry(&machfile)
}

func (l *Loader) buildRegistry(machfile *Machfile) (*domain.Registry, error) {
	if machfile.Version == "" {
		l.logger.Warn("machfile has no version field")
	}

	// First pass: collect names so prerequisites can be verified.
	declared := make(map[string]bool, len(machfile.Targets))
	for _, entry := range machfile.Targets {
		declared[entry.Name] = true
	}

	registry := domain.NewRegistry()
	for _, entry := range machfile.Targets {
		if !validTargetNameRegex.MatchString(entry.Name) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidTargetName, "invalid machfile"), "target_name", entry.Name)
		}

		for _, prereq := range entry.Spec.DependsOn {
			if !declared[prereq] {
				err := zerr.With(zerr.Wrap(domain.ErrUnknownTarget, "invalid machfile"), "target", prereq)
				return nil, zerr.With(err, "required_by", entry.Name)
			}
		}

		target := &domain.Target{
			Name:          domain.NewInternedString(entry.Name),
			Description:   entry.Spec.Description,
			Commands:      entry.Spec.Cmd,
			Prerequisites: internStrings(entry.Spec.DependsOn),
		}
		if err := registry.AddTarget(target); err != nil {
			return nil, err
		}
	}

	if machfile.Default != "" {
		if err := registry.SetDefault(machfile.Default); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func internStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
