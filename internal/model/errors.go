package model

import "errors"

// Sentinel errors returned by stores and services. Handlers map these to
// HTTP status codes; everything else is treated as internal.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)
