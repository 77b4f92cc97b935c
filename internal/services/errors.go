package services

import "errors"

// Check service errors
var (
	// Input errors
	ErrNoInputPath  = errors.New("no input path provided")
	ErrNoField      = errors.New("no target field provided")
	ErrNoOutputPath = errors.New("no output path provided")

	// General errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrOperationTimeout = errors.New("operation timed out")
)
