package grid

import (
	"errors"
)

var (
	ErrCircular  = errors.New("circular reference")
	ErrBounds    = errors.New("position out of bounds")
	ErrDimension = errors.New("invalid dimension")
)
