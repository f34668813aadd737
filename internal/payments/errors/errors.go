package errors

import "errors"

var (
	ErrNotFound = errors.New("payment record not found")

	ErrInvalidID = errors.New("invalid payment record ID format")
)
