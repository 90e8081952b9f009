package tableio

import "errors"

var (
	// ErrInputNotFound is returned when the input file does not exist or cannot be opened
	ErrInputNotFound = errors.New("input file not found")

	// ErrEmptyInput is returned when the input holds no header row
	ErrEmptyInput = errors.New("input has no header row")
)
