// Package app implements the application layer for mach.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/mvoegeli/mach/internal/core/ports"
	"github.com/mvoegeli/mach/internal/engine/runner"
	"github.com/mvoegeli/mach/internal/ui/output"
	"github.com/mvoegeli/mach/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       *runner.Runner
	logger       ports.Logger
	configPath   string
	stdout       io.Writer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, run *runner.Runner, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		runner:       run,
		logger:       log,
		configPath:   domain.MachfileName,
		stdout:       os.Stdout,
	}
}

// SetConfigPath overrides the machfile location. Wired to the --config flag.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// SetOutput redirects the listing output. Used for testing.
func (a *App) SetOutput(w io.Writer) {
	a.stdout = w
}

// Run executes the invocation for the requested targets. With no targets it
// falls back to the machfile's default target, or to the listing when no
// default is configured.
func (a *App) Run(ctx context.Context, targetNames []string) error {
	registry, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(targetNames) == 0 {
		if registry.Default() == "" {
			return a.renderList(registry)
		}
		targetNames = []string{registry.Default()}
	}

	if err := a.runner.Run(ctx, registry, targetNames); err != nil {
		return errors.Join(domain.ErrRunFailed, err)
	}
	return nil
}

// List renders every registered target in declaration order.
func (a *App) List(_ context.Context) error {
	registry, err := a.configLoader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	return a.renderList(registry)
}

func (a *App) renderList(registry *domain.Registry) error {
	out := output.New(a.stdout)
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(out.Profile)
	styles := style.NewList(r)

	targets := registry.List()

	nameWidth := 0
	for _, t := range targets {
		if n := len(t.Name.String()); n > nameWidth {
			nameWidth = n
		}
	}

	for _, t := range targets {
		name := t.Name.String()
		padding := strings.Repeat(" ", nameWidth-len(name))

		line := styles.Name.Render(name) + padding + "  " + styles.Description.Render(t.Description)
		if name == registry.Default() {
			line += " " + styles.Default.Render("(default)")
		}

		if _, err := fmt.Fprintln(a.stdout, line); err != nil {
			return zerr.Wrap(err, "failed to write listing")
		}
	}

	return nil
}
