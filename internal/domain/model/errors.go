package model

import "errors"

// Sentinel errors for structural input violations.
var (
	ErrInvalidShotContext = errors.New("invalid shot context")
	ErrInvalidOpponent    = errors.New("invalid opponent")
)
