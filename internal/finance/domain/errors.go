package finance

import "errors"

// ErrInvalidParameter is returned when a financial precondition is violated.
var ErrInvalidParameter = errors.New("finance: invalid parameter")
