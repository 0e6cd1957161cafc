package grid

import "errors"

// Sentinel errors describing why a zone was defaulted.
var (
	ErrMalformedProbability = errors.New("malformed probability")
	ErrOraclePanic          = errors.New("oracle panicked")
)

func isMalformed(err error) bool {
	return errors.Is(err, ErrMalformedProbability)
}
