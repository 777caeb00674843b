package grid

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// Value is what Read reports for a cell: its raw text and kind, and its
// value seen as a number (when it has one) and as a text.
type Value struct {
	Raw     string
	Kind    value.Kind
	Number  float64
	Numeric bool
	Text    string
}

type Option func(*Sheet)

// WithSparseStorage only keeps the cells that are not empty.
func WithSparseStorage() Option {
	return func(s *Sheet) {
		s.sparse = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sheet) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStorage replaces the default storage. The extent of the grid is then
// the one of the given storage.
func WithStorage(store Storage) Option {
	return func(s *Sheet) {
		s.store = store
	}
}

// Sheet is a grid of cells whose formulas are kept up to date with the cells
// they read. A Sheet is not safe for concurrent use.
type Sheet struct {
	store  Storage
	sparse bool
	graph  *Graph
	logger *slog.Logger
}

func New(lines, cols int64, opts ...Option) (*Sheet, error) {
	sh := Sheet{
		graph:  NewGraph(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(&sh)
	}
	if sh.store == nil {
		var (
			store Storage
			err   error
		)
		if sh.sparse {
			store, err = NewSparseStorage(lines, cols)
		} else {
			store, err = NewStorage(lines, cols)
		}
		if err != nil {
			return nil, err
		}
		sh.store = store
	}
	return &sh, nil
}

func (s *Sheet) Dimension() layout.Dimension {
	return s.store.Dimension()
}

// Assign classifies raw and writes it at pos.
func (s *Sheet) Assign(pos layout.Position, raw string) error {
	c, err := Classify(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", pos, err)
	}
	return s.Set(pos, c)
}

// Set writes c at pos. A write that would make a formula depend on itself,
// directly or not, is rejected with ErrCircular and leaves the sheet
// untouched. Otherwise the cached values of pos and of every formula
// depending on it are dropped.
func (s *Sheet) Set(pos layout.Position, c Content) error {
	if !s.Dimension().Contains(pos) {
		return fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	if c == nil {
		c = Empty{}
	}
	deps := s.dependencies(c)
	if s.graph.WouldCycle(pos, deps) {
		s.logger.Warn("write rejected", "cell", pos.Addr(), "raw", c.Raw(), "err", ErrCircular)
		return fmt.Errorf("%s: %w", pos, ErrCircular)
	}
	if err := s.store.SetCell(pos, c); err != nil {
		return err
	}
	s.graph.Update(pos, deps)
	n := s.invalidate(pos)
	s.logger.Debug("cell updated", "cell", pos.Addr(), "kind", c.Kind(), "deps", len(deps), "invalidated", n)
	return nil
}

func (s *Sheet) Cell(pos layout.Position) (Content, error) {
	return s.store.Cell(pos)
}

// Number gives the numeric value of the cell at pos, evaluating its formula
// when needed.
func (s *Sheet) Number(pos layout.Position) (float64, error) {
	c, err := s.store.Cell(pos)
	if err != nil {
		return 0, err
	}
	return c.Number(s)
}

func (s *Sheet) Text(pos layout.Position) (string, error) {
	c, err := s.store.Cell(pos)
	if err != nil {
		return "", err
	}
	return c.Text(s)
}

// At resolves the references of formulas.
func (s *Sheet) At(pos layout.Position) (float64, error) {
	return s.Number(pos)
}

// Read reports everything known about a cell. Only a failing formula makes
// Read fail; a text that is not a number is reported with Numeric unset.
func (s *Sheet) Read(pos layout.Position) (Value, error) {
	c, err := s.store.Cell(pos)
	if err != nil {
		return Value{}, err
	}
	v := Value{
		Raw:  c.Raw(),
		Kind: c.Kind(),
	}
	n, err := c.Number(s)
	if err != nil {
		if c.Kind() == value.KindFormula {
			return v, err
		}
		v.Text, _ = c.Text(s)
		return v, nil
	}
	v.Number = n
	v.Numeric = true
	if c.Kind() == value.KindFormula {
		v.Text = value.FormatFloat(n)
	} else {
		v.Text, _ = c.Text(s)
	}
	return v, nil
}

// Cells iterates over the cells that are not empty, line by line.
func (s *Sheet) Cells() iter.Seq2[layout.Position, Content] {
	it := func(yield func(layout.Position, Content) bool) {
		for pos := range s.Dimension().Bounds().Positions() {
			c, err := s.store.Cell(pos)
			if err != nil {
				return
			}
			if c.Kind() == value.KindEmpty {
				continue
			}
			if !yield(pos, c) {
				return
			}
		}
	}
	return it
}

// RecomputeAll drops every cached value then evaluates every formula again.
// Failures do not stop the pass; they are returned together.
func (s *Sheet) RecomputeAll() error {
	var list []layout.Position
	for pos, c := range s.Cells() {
		if f, ok := c.(*Formula); ok {
			f.clear()
			list = append(list, pos)
		}
	}
	var errs []error
	for _, pos := range list {
		if _, err := s.Number(pos); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pos, err))
		}
	}
	s.logger.Debug("recompute done", "formulas", len(list), "failures", len(errs))
	return errors.Join(errs...)
}

func (s *Sheet) DependsOn(pos layout.Position) []layout.Position {
	return s.graph.DependsOn(pos)
}

func (s *Sheet) Dependents(pos layout.Position) []layout.Position {
	return s.graph.Dependents(pos)
}

func (s *Sheet) invalidate(pos layout.Position) int {
	var count int
	s.graph.Walk(pos, func(p layout.Position) {
		c, err := s.store.Cell(p)
		if err != nil {
			return
		}
		if f, ok := c.(*Formula); ok {
			f.clear()
			count++
		}
	})
	return count
}

// dependencies expands the references of c into positions. Only the part of
// a reference that lies in the grid is kept: cells outside it never change
// and reading them fails anyway.
func (s *Sheet) dependencies(c Content) []layout.Position {
	f, ok := c.(*Formula)
	if !ok {
		return nil
	}
	var (
		deps   []layout.Position
		bounds = s.Dimension().Bounds()
	)
	for _, ref := range f.References() {
		rg, ok := layout.RangeFromString(ref).Intersect(bounds)
		if !ok {
			continue
		}
		deps = slices.AppendSeq(deps, rg.Positions())
	}
	return deps
}
