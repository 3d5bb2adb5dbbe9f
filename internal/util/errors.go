package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrNoProject indicates no project record exists for the root
	ErrNoProject = errors.New("no project")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
