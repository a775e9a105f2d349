package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mvoegeli/mach/internal/app"
	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/mvoegeli/mach/internal/core/ports/mocks"
	"github.com/mvoegeli/mach/internal/engine/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	stdout   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(mockLoader, runner.NewRunner(mockExecutor, mockLogger), mockLogger)
	stdout := new(bytes.Buffer)
	a.SetOutput(stdout)

	return &fixture{app: a, loader: mockLoader, executor: mockExecutor, stdout: stdout}
}

func registryWithTargets(t *testing.T, defaultName string, targets ...*domain.Target) *domain.Registry {
	t.Helper()
	r := domain.NewRegistry()
	for _, tgt := range targets {
		require.NoError(t, r.AddTarget(tgt))
	}
	if defaultName != "" {
		require.NoError(t, r.SetDefault(defaultName))
	}
	return r
}

func namedTarget(name, description string) *domain.Target {
	return &domain.Target{
		Name:        domain.NewInternedString(name),
		Description: description,
		Commands:    []string{"true"},
	}
}

func TestApp_Run_RequestedTarget(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "", namedTarget("docs", "Build the docs"))
	f.loader.EXPECT().Load(domain.MachfileName).Return(registry, nil).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	err := f.app.Run(context.Background(), []string{"docs"})
	require.NoError(t, err)
}

func TestApp_Run_DefaultTarget(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "docs", namedTarget("docs", "Build the docs"))
	f.loader.EXPECT().Load(domain.MachfileName).Return(registry, nil).Times(1)

	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target *domain.Target) error {
			assert.Equal(t, "docs", target.Name.String())
			return nil
		},
	).Times(1)

	err := f.app.Run(context.Background(), nil)
	require.NoError(t, err)
}

func TestApp_Run_NoDefaultFallsBackToListing(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "",
		namedTarget("develop", "Install the development dependencies"),
		namedTarget("docs", "Build the docs"),
	)
	f.loader.EXPECT().Load(domain.MachfileName).Return(registry, nil).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)

	err := f.app.Run(context.Background(), nil)
	require.NoError(t, err)

	listing := f.stdout.String()
	assert.Contains(t, listing, "develop")
	assert.Contains(t, listing, "docs")
	assert.Contains(t, listing, "Install the development dependencies")
}

func TestApp_Run_ConfigLoadError(t *testing.T) {
	f := newFixture(t)

	loadErr := errors.New("config load error")
	f.loader.EXPECT().Load(domain.MachfileName).Return(nil, loadErr).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)

	err := f.app.Run(context.Background(), []string{"docs"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, loadErr))
	assert.Equal(t, 1, domain.ExitStatus(err))
}

func TestApp_Run_ExecutionFailure(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "", namedTarget("docs", ""))
	f.loader.EXPECT().Load(domain.MachfileName).Return(registry, nil).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(errors.New("boom")).Times(1)

	err := f.app.Run(context.Background(), []string{"docs"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRunFailed))
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "", namedTarget("docs", ""))
	f.loader.EXPECT().Load(domain.MachfileName).Return(registry, nil).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)

	err := f.app.Run(context.Background(), []string{"ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTarget))
	assert.Equal(t, 1, domain.ExitStatus(err))
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "docs",
		namedTarget("docs", "Build the docs"),
		namedTarget("view-docs", "Open the built docs"),
	)
	f.loader.EXPECT().Load(domain.MachfileName).Return(registry, nil).Times(1)

	err := f.app.List(context.Background())
	require.NoError(t, err)

	listing := f.stdout.String()
	assert.Contains(t, listing, "docs")
	assert.Contains(t, listing, "view-docs")
	assert.Contains(t, listing, "(default)")
}

func TestApp_List_EmptyRegistry(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(domain.MachfileName).Return(domain.NewRegistry(), nil).Times(1)

	err := f.app.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())
}

func TestApp_SetConfigPath(t *testing.T) {
	f := newFixture(t)

	registry := registryWithTargets(t, "", namedTarget("docs", ""))
	f.loader.EXPECT().Load("ci/machfile.yaml").Return(registry, nil).Times(1)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	f.app.SetConfigPath("ci/machfile.yaml")
	err := f.app.Run(context.Background(), []string{"docs"})
	require.NoError(t, err)
}
