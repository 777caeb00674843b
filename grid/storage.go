package grid

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/midbel/gridcalc/layout"
)

// Storage keeps the content of every slot of a grid of fixed extent.
// Positions are 1-based. Unset slots are reported as Empty.
type Storage interface {
	Dimension() layout.Dimension
	Cell(layout.Position) (Content, error)
	SetCell(layout.Position, Content) error
}

type arrayStorage struct {
	size  layout.Dimension
	cells [][]Content
}

// NewStorage allocates every slot of the grid up front.
func NewStorage(lines, cols int64) (Storage, error) {
	if lines <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", lines, cols, ErrDimension)
	}
	rows, err := safecast.Conv[int](lines)
	if err != nil {
		return nil, fmt.Errorf("%d lines: %w", lines, ErrDimension)
	}
	width, err := safecast.Conv[int](cols)
	if err != nil {
		return nil, fmt.Errorf("%d columns: %w", cols, ErrDimension)
	}
	s := arrayStorage{
		size: layout.Dimension{
			Lines:   lines,
			Columns: cols,
		},
		cells: make([][]Content, rows),
	}
	for i := range s.cells {
		s.cells[i] = make([]Content, width)
	}
	return &s, nil
}

func (s *arrayStorage) Dimension() layout.Dimension {
	return s.size
}

func (s *arrayStorage) Cell(pos layout.Position) (Content, error) {
	row, col, err := s.index(pos)
	if err != nil {
		return nil, err
	}
	c := s.cells[row][col]
	if c == nil {
		return Empty{}, nil
	}
	return c, nil
}

func (s *arrayStorage) SetCell(pos layout.Position, c Content) error {
	row, col, err := s.index(pos)
	if err != nil {
		return err
	}
	s.cells[row][col] = c
	return nil
}

func (s *arrayStorage) index(pos layout.Position) (int, int, error) {
	if !s.size.Contains(pos) {
		return 0, 0, fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	row, err := safecast.Conv[int](pos.Line - 1)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	col, err := safecast.Conv[int](pos.Column - 1)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	return row, col, nil
}

type sparseStorage struct {
	size  layout.Dimension
	cells map[layout.Position]Content
}

// NewSparseStorage only keeps the slots that are not empty. It suits large
// grids with few cells set.
func NewSparseStorage(lines, cols int64) (Storage, error) {
	if lines <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", lines, cols, ErrDimension)
	}
	s := sparseStorage{
		size: layout.Dimension{
			Lines:   lines,
			Columns: cols,
		},
		cells: make(map[layout.Position]Content),
	}
	return &s, nil
}

func (s *sparseStorage) Dimension() layout.Dimension {
	return s.size
}

func (s *sparseStorage) Cell(pos layout.Position) (Content, error) {
	if !s.size.Contains(pos) {
		return nil, fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	c, ok := s.cells[pos]
	if !ok {
		return Empty{}, nil
	}
	return c, nil
}

func (s *sparseStorage) SetCell(pos layout.Position, c Content) error {
	if !s.size.Contains(pos) {
		return fmt.Errorf("%s: %w", pos, ErrBounds)
	}
	if _, ok := c.(Empty); ok || c == nil {
		delete(s.cells, pos)
		return nil
	}
	s.cells[pos] = c
	return nil
}
