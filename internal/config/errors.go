package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrEmptyRunsDir is returned when no runs directory is configured.
	ErrEmptyRunsDir = errors.New("invalid runs directory: must not be empty")

	// ErrEmptyOutputFile is returned when no output path is configured.
	ErrEmptyOutputFile = errors.New("invalid output file: must not be empty")

	// ErrInvalidLogDir is returned when the log directory is empty or is not
	// a single path element.
	ErrInvalidLogDir = errors.New("invalid log directory: must be a single directory name")

	// ErrInvalidLogExtension is returned when the log extension does not
	// start with a dot.
	ErrInvalidLogExtension = errors.New("invalid log extension: must start with '.'")

	// ErrConflictingOutputs is returned when the markdown summary path is the
	// same as the JSON report path.
	ErrConflictingOutputs = errors.New("conflicting outputs: markdown summary and report must differ")
)
