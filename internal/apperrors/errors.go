package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource changed underneath the caller (e.g. a stale status).
var ErrConflict = errors.New("resource was modified concurrently")

// ErrInvalidTransition indicates a status change that the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")
