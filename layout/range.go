package layout

import (
	"fmt"
	"iter"
	"strings"
)

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) *Range {
	return &Range{
		Starts: starts,
		Ends:   ends,
	}
}

// RangeFromString accepts a single address (A1) or two corners (A1:B2).
// A single address gives a range of one cell.
func RangeFromString(str string) *Range {
	fst, lst, ok := strings.Cut(str, ":")
	starts := ParsePosition(fst)
	if !ok {
		return NewRange(starts, starts)
	}
	return NewRange(starts, ParsePosition(lst))
}

func ParseRange(str string) (*Range, error) {
	fst, lst, ok := strings.Cut(strings.TrimSpace(str), ":")
	starts, err := ParseAddr(fst)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewRange(starts, starts), nil
	}
	ends, err := ParseAddr(lst)
	if err != nil {
		return nil, err
	}
	return NewRange(starts, ends), nil
}

func (r *Range) Contains(pos Position) bool {
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

func (r *Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column + 1
}

func (r *Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line + 1
}

func (r *Range) Size() int64 {
	return r.Width() * r.Height()
}

func (r *Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}

// Normalize returns a copy whose Starts is the top left corner and Ends the
// bottom right one, whatever the order the corners were given in.
func (r *Range) Normalize() *Range {
	x := NewRange(r.Starts, r.Ends)
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	return x
}

// Intersect gives the part of r that is also in other. Both ranges are
// normalized first. It reports false when they have no cell in common.
func (r *Range) Intersect(other *Range) (*Range, bool) {
	var (
		a = r.Normalize()
		b = other.Normalize()
		x = NewRange(a.Starts, a.Ends)
	)
	x.Starts.Line = max(a.Starts.Line, b.Starts.Line)
	x.Starts.Column = max(a.Starts.Column, b.Starts.Column)
	x.Ends.Line = min(a.Ends.Line, b.Ends.Line)
	x.Ends.Column = min(a.Ends.Column, b.Ends.Column)
	if x.Starts.Line > x.Ends.Line || x.Starts.Column > x.Ends.Column {
		return nil, false
	}
	return x, true
}

// Positions yields every position of the normalized range in row-major order.
// The loops stop on the last corner instead of stepping past it so that a
// corner at the largest int64 does not wrap around.
func (r *Range) Positions() iter.Seq[Position] {
	n := r.Normalize()
	it := func(yield func(Position) bool) {
		for line := n.Starts.Line; ; line++ {
			for col := n.Starts.Column; ; col++ {
				pos := Position{
					Line:   line,
					Column: col,
				}
				if !yield(pos) || col == n.Ends.Column && line == n.Ends.Line {
					return
				}
				if col == n.Ends.Column {
					break
				}
			}
		}
	}
	return it
}
