package colour

import "errors"

// Extraction errors. All failures returned from ExtractPalette wrap one of
// these sentinels; callers distinguish them with errors.Is.
var (
	// ErrInvalidInput indicates malformed dimensions, channel count, or a
	// pixel buffer too small for the declared geometry. Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData indicates too few usable pixels survived
	// filtering to extract a meaningful palette.
	ErrInsufficientData = errors.New("insufficient valid pixels")

	// ErrInternal indicates a state that should be unreachable; treat as a
	// bug in this package rather than a caller error.
	ErrInternal = errors.New("internal invariant violated")
)
