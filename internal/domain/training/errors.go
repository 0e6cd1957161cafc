package training

import "errors"

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown training mode")
