package ranking

import "errors"

// ErrUnknownCurrent is returned when the goalkeeper on court is not in the roster.
var ErrUnknownCurrent = errors.New("current goalkeeper not in roster")
