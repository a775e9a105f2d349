package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when attempting to register a target under a name that is already taken.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrUnknownTarget is returned when a requested or prerequisite target name is not in the registry.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrCycleDetected is returned when the prerequisite relation contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidTargetName is returned when a target name contains invalid characters.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrConfigReadFailed is returned when the machfile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read machfile")

	// ErrConfigParseFailed is returned when the machfile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse machfile")

	// ErrCommandFailed is returned when a target's command exits with a nonzero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrRunFailed is returned when an invocation terminates before all resolved targets completed.
	ErrRunFailed = zerr.New("run failed")
)
