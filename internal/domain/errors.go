package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrSpaceProbe   = errors.New("cannot determine available space")
)
