package formula

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/midbel/gridcalc/layout"
)

// Context resolves the numeric value of a single cell while a formula is
// evaluated.
type Context interface {
	At(layout.Position) (float64, error)
}

type item struct {
	values []float64
	mark   bool
}

func scalar(v float64) item {
	return item{
		values: []float64{v},
	}
}

func (i item) isScalar() bool {
	return !i.mark && len(i.values) == 1
}

type stack []item

func (s *stack) Push(i item) {
	*s = append(*s, i)
}

func (s *stack) Pop() (item, bool) {
	n := len(*s)
	if n == 0 {
		return item{}, false
	}
	i := (*s)[n-1]
	*s = (*s)[:n-1]
	return i, true
}

func (s *stack) Len() int {
	return len(*s)
}

// Eval runs a postfix token sequence against ctx.
func Eval(postfix []Token, ctx Context) (float64, error) {
	var st stack
	for _, tok := range postfix {
		var err error
		switch tok.Type {
		case Number:
			err = evalNumber(tok, &st)
		case CellRef:
			err = evalReference(tok, &st, ctx)
		case Operator:
			err = evalOperator(tok, &st)
		case Function:
			err = evalFunction(tok, &st)
		case ArgMark:
			st.Push(item{mark: true})
		default:
			err = fmt.Errorf("%s: %w", tok, ErrEval)
		}
		if err != nil {
			return 0, err
		}
	}
	if st.Len() != 1 {
		return 0, ErrLeftover
	}
	res, _ := st.Pop()
	if !res.isScalar() {
		return 0, ErrReduce
	}
	return res.values[0], nil
}

func evalNumber(tok Token, st *stack) error {
	n, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", tok.Literal, ErrLiteral)
	}
	st.Push(scalar(n))
	return nil
}

func evalReference(tok Token, st *stack, ctx Context) error {
	if !tok.IsRange() {
		v, err := ctx.At(layout.ParsePosition(tok.Literal))
		if err != nil {
			return err
		}
		st.Push(scalar(v))
		return nil
	}
	var values []float64
	for pos := range layout.RangeFromString(tok.Literal).Positions() {
		v, err := ctx.At(pos)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	st.Push(item{values: values})
	return nil
}

func evalOperator(tok Token, st *stack) error {
	if st.Len() < 2 {
		return fmt.Errorf("%s: %w", tok.Literal, ErrMissing)
	}
	right, _ := st.Pop()
	left, _ := st.Pop()
	if !left.isScalar() || !right.isScalar() {
		return fmt.Errorf("%s: %w", tok.Literal, ErrOperand)
	}
	var (
		x   = left.values[0]
		y   = right.values[0]
		res float64
	)
	switch tok.Literal {
	case "+":
		res = x + y
	case "-":
		res = x - y
	case "*":
		res = x * y
	case "/":
		if y == 0 {
			return ErrDivZero
		}
		res = x / y
	default:
		return fmt.Errorf("%s: %w", tok.Literal, ErrOperator)
	}
	st.Push(scalar(res))
	return nil
}

func evalFunction(tok Token, st *stack) error {
	var (
		groups [][]float64
		found  bool
	)
	for st.Len() > 0 {
		top, _ := st.Pop()
		if top.mark {
			found = true
			break
		}
		groups = append(groups, top.values)
	}
	if !found {
		return fmt.Errorf("%s: %w", tok.Literal, ErrMarker)
	}
	slices.Reverse(groups)
	args := slices.Concat(groups...)
	if len(args) == 0 {
		return fmt.Errorf("%s: %w", tok.Literal, ErrNoArgs)
	}
	fn, ok := Lookup(tok.Literal)
	if !ok {
		return fmt.Errorf("%s: %w", tok.Literal, ErrFunction)
	}
	st.Push(scalar(fn(args)))
	return nil
}
