package gauge

import "errors"

var (
	ErrInvalidValueRange  = errors.New("invalid value range: min must be less than max")
	ErrInvalidDegreeRange = errors.New("invalid degree range: min must be less than max")
	ErrInvalidStep        = errors.New("invalid step: must be greater than zero")
	ErrDegenerateRange    = errors.New("degenerate range: min equals max")
)
