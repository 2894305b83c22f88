package grid

import "errors"

var (
	// ErrEmptyGrid is returned when a decoded source has zero rows or
	// zero columns.
	ErrEmptyGrid = errors.New("grid: empty grid")
	// ErrUnknownFormat is returned when a file extension matches neither
	// the image decoders nor is treated as the text token format.
	ErrUnknownFormat = errors.New("grid: unrecognized input format")
)
