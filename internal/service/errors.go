package service

import "errors"

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrNotFound     = errors.New("not found")    // 404
	// ErrConflict surfaces as 400, not 409: the storefront clients were
	// built against 400 for duplicate registrations.
	ErrConflict = errors.New("conflict")
)
