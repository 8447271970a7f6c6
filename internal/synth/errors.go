package synth

import "errors"

// Common errors returned by the synth package
var (
	// ErrProductionFailed is returned when audio production fails for any general reason
	ErrProductionFailed = errors.New("failed to produce audio from description")

	// ErrEmptyDescription is returned when the description is empty
	ErrEmptyDescription = errors.New("description cannot be empty")
)
