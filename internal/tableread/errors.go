package tableread

import "errors"

var (
	// ErrNoColumns is returned when a source has no header line to parse.
	ErrNoColumns = errors.New("no columns to parse from source")

	// ErrUnknownSource is returned when no loader can serve a source.
	ErrUnknownSource = errors.New("unsupported table source")

	// ErrInvalidOptions is returned for load options the readers cannot honour.
	ErrInvalidOptions = errors.New("invalid load options")
)
