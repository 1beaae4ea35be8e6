package service

import "errors"

// Sentinel errors the handlers map onto the HTTP taxonomy.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInsufficientQuantity = errors.New("insufficient quantity available")
	ErrInvalidTransition    = errors.New("invalid status transition")
)
