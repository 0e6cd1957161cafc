package service

import "errors"

// Sentinel errors returned by the service. Caller errors from the domain
// packages (invalid shot context, unknown current goalkeeper, unknown mode)
// and repository.ErrNotFound are passed through wrapped.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrEmptyRoster    = errors.New("roster is empty")
)
