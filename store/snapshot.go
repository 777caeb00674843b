package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/zeebo/blake3"
)

var (
	ErrChecksum = errors.New("checksum mismatch")
	ErrNotFound = errors.New("snapshot not found")
)

// Record is the raw content of one cell that is not empty.
type Record struct {
	Line   int64  `msgpack:"line"`
	Column int64  `msgpack:"column"`
	Raw    string `msgpack:"raw"`
}

// Snapshot is a frozen copy of the raw contents of a sheet. Only raw texts
// are kept: values are computed again once the snapshot is restored.
type Snapshot struct {
	ID       string    `msgpack:"id"`
	Name     string    `msgpack:"name"`
	Version  int       `msgpack:"version"`
	Lines    int64     `msgpack:"lines"`
	Columns  int64     `msgpack:"columns"`
	Created  time.Time `msgpack:"created"`
	Cells    []Record  `msgpack:"cells"`
	Checksum []byte    `msgpack:"checksum"`
}

func TakeSnapshot(name string, sh *grid.Sheet) *Snapshot {
	size := sh.Dimension()
	snap := Snapshot{
		ID:      uuid.NewString(),
		Name:    name,
		Lines:   size.Lines,
		Columns: size.Columns,
		Created: time.Now().UTC(),
	}
	for pos, c := range sh.Cells() {
		r := Record{
			Line:   pos.Line,
			Column: pos.Column,
			Raw:    c.Raw(),
		}
		snap.Cells = append(snap.Cells, r)
	}
	snap.Checksum = snap.sum()
	return &snap
}

// Verify checks that the cells have not changed since the snapshot was
// taken.
func (s *Snapshot) Verify() error {
	if !bytes.Equal(s.Checksum, s.sum()) {
		return fmt.Errorf("%s: %w", s.Name, ErrChecksum)
	}
	return nil
}

// Restore rebuilds a sheet with the same extent and the same raw contents.
func (s *Snapshot) Restore(opts ...grid.Option) (*grid.Sheet, error) {
	if err := s.Verify(); err != nil {
		return nil, err
	}
	sh, err := grid.New(s.Lines, s.Columns, opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range s.Cells {
		pos := layout.Position{
			Line:   r.Line,
			Column: r.Column,
		}
		if err := sh.Assign(pos, r.Raw); err != nil {
			return nil, err
		}
	}
	return sh, nil
}

func (s *Snapshot) sum() []byte {
	var buf []byte
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.Lines))
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.Columns))
	for _, r := range s.Cells {
		buf = binary.BigEndian.AppendUint64(buf, uint64(r.Line))
		buf = binary.BigEndian.AppendUint64(buf, uint64(r.Column))
		buf = binary.BigEndian.AppendUint64(buf, uint64(len(r.Raw)))
		buf = append(buf, r.Raw...)
	}
	h := blake3.New()
	h.Write(buf)
	return h.Sum(nil)
}
