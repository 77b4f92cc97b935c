// Package dataset loads tabular input files (CSV and xlsx) into
// in-memory datasets and validates that the requested target field
// exists in the header.
//
// Loading is strict about structure: a file without a header row fails
// with ErrMissingHeader, and unreadable content fails with
// ErrMalformedInput. Data rows are kept verbatim, including ragged
// rows with fewer fields than the header.
package dataset
