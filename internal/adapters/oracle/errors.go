package oracle

import "errors"

// Sentinel errors returned by oracles.
var (
	ErrMalformed   = errors.New("malformed oracle response")
	ErrStatus      = errors.New("unexpected oracle status")
	ErrBreakerOpen = errors.New("oracle circuit open")
	ErrInvalidZone = errors.New("invalid oracle zone")
)
