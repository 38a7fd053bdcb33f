package services

import "errors"

// Error taxonomy shared by all services. Handlers translate these into HTTP
// statuses: validation and conflict to 400, unauthorized to 401, not-found to
// 404, anything else to 500 with the cause logged server-side only.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Token failures are kept distinct so the middleware can answer with a
// different message per cause.
var (
	ErrTokenExpired = errors.New("expired token")
	ErrTokenInvalid = errors.New("invalid token")
	ErrUnknownUser  = errors.New("user no longer exists")
)
