package s2v

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// EncodeFormula replaces the argument separators of a formula by commas so
// that they can not be confused with the field separator. Only the ';' found
// inside parentheses are replaced.
func EncodeFormula(raw string) string {
	return swapInParens(raw, semi, comma)
}

// DecodeFormula reverses EncodeFormula.
func DecodeFormula(raw string) string {
	return swapInParens(raw, comma, semi)
}

func swapInParens(str string, from, to byte) string {
	var (
		buf   strings.Builder
		depth int
	)
	buf.Grow(len(str))
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case c == lparen:
			depth++
		case c == rparen:
			depth = max(0, depth-1)
		case c == from && depth > 0:
			c = to
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

// Save writes every line of the sheet. A line stops after its last cell that
// is not empty; a line without any content is written empty.
func Save(w io.Writer, sh *grid.Sheet) error {
	var (
		size    = sh.Dimension()
		records [][]string
	)
	for line := int64(1); line <= size.Lines; line++ {
		var fields []string
		for col := int64(1); col <= size.Columns; col++ {
			pos := layout.Position{
				Line:   line,
				Column: col,
			}
			c, err := sh.Cell(pos)
			if err != nil {
				return err
			}
			raw := c.Raw()
			if c.Kind() == value.KindFormula {
				raw = EncodeFormula(raw)
			}
			fields = append(fields, raw)
		}
		records = append(records, trimFields(fields))
	}
	return NewWriter(w).WriteAll(records)
}

func trimFields(fields []string) []string {
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

// Load assigns every field of the input to the cell at the same place.
// Lines and fields beyond the extent of the sheet are ignored and the cells
// the input does not reach are cleared. A field that can not be assigned does
// not stop the load: all failures are returned together once the input is
// consumed.
func Load(r io.Reader, sh *grid.Sheet) error {
	rs := NewReader(r)
	records, err := rs.ReadAll()
	if err != nil {
		return err
	}
	return apply(records, sh)
}

func apply(records [][]string, sh *grid.Sheet) error {
	var errs []error
	for pos := range sh.Dimension().Bounds().Positions() {
		raw, ok := field(records, pos)
		if !ok {
			c, err := sh.Cell(pos)
			if err != nil || c.Kind() == value.KindEmpty {
				continue
			}
		}
		if formula.IsFormula(raw) {
			raw = DecodeFormula(raw)
		}
		if err := sh.Assign(pos, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func field(records [][]string, pos layout.Position) (string, bool) {
	if pos.Line > int64(len(records)) {
		return "", false
	}
	fields := records[pos.Line-1]
	if pos.Column > int64(len(fields)) {
		return "", false
	}
	return fields[pos.Column-1], true
}

// Extent gives the smallest dimension able to hold every field of records.
func Extent(records [][]string) layout.Dimension {
	var dim layout.Dimension
	for i, fields := range records {
		if n := len(trimFields(fields)); n > 0 {
			dim.Lines = int64(i) + 1
			dim.Columns = max(dim.Columns, int64(n))
		}
	}
	return dim
}

// ReadFile creates a sheet holding the content of file. The sheet is large
// enough for the content of the file and for minimum. Fields that can not be
// assigned are reported in the error while the sheet is still returned.
func ReadFile(file string, minimum layout.Dimension, opts ...grid.Option) (*grid.Sheet, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	size := Extent(records).Max(minimum)
	sh, err := grid.New(size.Lines, size.Columns, opts...)
	if err != nil {
		return nil, err
	}
	return sh, apply(records, sh)
}

func WriteFile(file string, sh *grid.Sheet) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := Save(w, sh); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
