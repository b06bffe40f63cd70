package models

import "errors"

// Sentinel errors shared across the repository and service layers.
// Services wrap these with context via fmt.Errorf("...: %w", err);
// handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrDuplicateReview = errors.New("review already exists")
	ErrConflict        = errors.New("conflicting update")
)
