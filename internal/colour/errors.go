package colour

import "errors"

// Sentinel errors for caller-input failures. These are fail-fast and never
// retried; callers test for them with errors.Is.
var (
	// ErrInvalidImage indicates the image has no pixel data or zero dimensions.
	ErrInvalidImage = errors.New("invalid image: empty pixel data or zero dimensions")

	// ErrEmptyPalette indicates a palette with zero colours was supplied where
	// at least one is required.
	ErrEmptyPalette = errors.New("palette has no colours")

	// ErrInvalidParameter indicates an out-of-range numeric parameter.
	ErrInvalidParameter = errors.New("invalid parameter")
)
