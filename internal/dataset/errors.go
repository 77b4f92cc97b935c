package dataset

import "errors"

// Sentinel errors for dataset loading and validation. Callers match
// them with errors.Is.
var (
	// ErrFileNotFound indicates the input file does not exist
	ErrFileNotFound = errors.New("input file not found")

	// ErrMissingHeader indicates the input has no header row
	ErrMissingHeader = errors.New("input has no header row")

	// ErrFieldNotFound indicates the requested field is not a header column
	ErrFieldNotFound = errors.New("field not present in header")

	// ErrMalformedInput indicates the input could not be parsed
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedFormat indicates an unrecognized file extension
	ErrUnsupportedFormat = errors.New("unsupported input format")
)
