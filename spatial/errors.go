package spatial

import "fmt"

// Sentinel errors returned by tree construction. Each exported error
// wraps an unexported sentinel with a package-qualified prefix at
// declaration, following the same double-sentinel convention the rest
// of this module uses; Build returns the exported value as-is, and
// callers errors.Is against it.
var (
	errEmptyInput        = fmt.Errorf("no sources supplied")
	errBodyOutsideBounds = fmt.Errorf("source lies outside the bounding cube")
	errInvalidConfig     = fmt.Errorf("theta must be >= 0, max bodies per leaf and max depth must be > 0")

	// ErrEmptyInput is returned when Build is called with zero sources.
	ErrEmptyInput = fmt.Errorf("spatial: %w", errEmptyInput)
	// ErrBodyOutsideBounds is returned when a source lies outside the
	// supplied bounding cube.
	ErrBodyOutsideBounds = fmt.Errorf("spatial: %w", errBodyOutsideBounds)
	// ErrInvalidConfig is returned when Config fails Validate.
	ErrInvalidConfig = fmt.Errorf("spatial: %w", errInvalidConfig)
)
