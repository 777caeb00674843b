package format

import (
	"errors"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/grid"
)

// ErrorCode gives the short code shown in place of a value that can not be
// computed.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, formula.ErrDivZero):
		return "#DIV/0!"
	case errors.Is(err, grid.ErrBounds):
		return "#REF!"
	case errors.Is(err, formula.ErrFunction):
		return "#NAME?"
	case errors.Is(err, formula.ErrNotNumeric), errors.Is(err, formula.ErrOperand):
		return "#VALUE!"
	case errors.Is(err, grid.ErrCircular):
		return "#CYCLE!"
	default:
		return "#ERROR!"
	}
}
