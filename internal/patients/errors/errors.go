package errors

import "errors"

var (
	ErrNotFound = errors.New("patient not found")

	ErrInvalidID = errors.New("invalid patient ID format")

	ErrDuplicateEmail = errors.New("patient with this email already exists")
)
