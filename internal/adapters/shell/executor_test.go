package shell_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvoegeli/mach/internal/adapters/shell"
	"github.com/mvoegeli/mach/internal/core/domain"
	"github.com/mvoegeli/mach/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_StreamsOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	// The command line is echoed before it runs.
	mockLogger.EXPECT().Info("echo hello").Times(1)

	executor := shell.NewExecutor(mockLogger)
	stdout := new(bytes.Buffer)
	executor.SetOutput(stdout, new(bytes.Buffer))

	target := &domain.Target{
		Name:     domain.NewInternedString("greet"),
		Commands: []string{"echo hello"},
	}

	err := executor.Execute(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestExecutor_Execute_CommandsRunInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(2)

	executor := shell.NewExecutor(mockLogger)
	stdout := new(bytes.Buffer)
	executor.SetOutput(stdout, new(bytes.Buffer))

	target := &domain.Target{
		Name:     domain.NewInternedString("ordered"),
		Commands: []string{"echo first", "echo second"},
	}

	err := executor.Execute(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", stdout.String())
}

func TestExecutor_Execute_NoCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	executor.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	target := &domain.Target{Name: domain.NewInternedString("empty")}

	err := executor.Execute(context.Background(), target)
	require.NoError(t, err)
}

func TestExecutor_Execute_FailureStopsSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(2)

	executor := shell.NewExecutor(mockLogger)
	executor.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	// The marker file must not exist afterwards: the failing command halts
	// the remaining sequence.
	marker := filepath.Join(t.TempDir(), "marker")
	target := &domain.Target{
		Name: domain.NewInternedString("failing"),
		Commands: []string{
			"echo before",
			"exit 2",
			"touch " + marker,
		},
	}

	err := executor.Execute(context.Background(), target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))
	assert.Equal(t, 2, domain.ExitStatus(err))

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "command after the failure must not run")
}

func TestExecutor_Execute_ExitStatusPropagatedVerbatim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	executor := shell.NewExecutor(mockLogger)
	executor.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	target := &domain.Target{
		Name:     domain.NewInternedString("status"),
		Commands: []string{"exit 42"},
	}

	err := executor.Execute(context.Background(), target)
	require.Error(t, err)
	assert.Equal(t, 42, domain.ExitStatus(err))
}

func TestExecutor_Execute_InheritsEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	t.Setenv("MACH_TEST_VAR", "inherited-123")

	executor := shell.NewExecutor(mockLogger)
	stdout := new(bytes.Buffer)
	executor.SetOutput(stdout, new(bytes.Buffer))

	target := &domain.Target{
		Name:     domain.NewInternedString("env"),
		Commands: []string{"echo $MACH_TEST_VAR"},
	}

	err := executor.Execute(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "inherited-123\n", stdout.String())
}
