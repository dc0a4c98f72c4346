package service

import "errors"

var (
	// ErrOutputNotFound is returned when the output spreadsheet does not exist.
	ErrOutputNotFound = errors.New("output file not found")

	// ErrInvalidMaxLinks is returned by RunPipeline for a non-positive cap.
	ErrInvalidMaxLinks = errors.New("max links must be a positive integer")
)
