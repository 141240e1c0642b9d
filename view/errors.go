package view

import "errors"

// Sentinel errors for rejected events. The viewport is left unchanged.
var (
	// ErrInvalidPrecision is returned for a precision value that is not a finite number.
	ErrInvalidPrecision = errors.New("invalid precision")

	// ErrInvalidPointer is returned for a pointer position that is not finite.
	ErrInvalidPointer = errors.New("invalid pointer position")
)
