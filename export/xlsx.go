package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/s2v"
	"github.com/xuri/excelize/v2"
)

var ErrEmpty = errors.New("workbook has no sheet")

var (
	toExcel = map[string]string{
		"MEAN": "AVERAGE",
	}
	fromExcel = map[string]string{
		"AVERAGE": "MEAN",
	}
)

// ToExcel rewrites a formula the way spreadsheet applications expect it:
// without the leading '=', with ',' between arguments and with their names
// for the builtin functions.
func ToExcel(raw string) (string, error) {
	tokens, err := formula.Tokenize(strings.TrimPrefix(raw, formula.Prefix))
	if err != nil {
		return "", err
	}
	return joinTokens(tokens, ',', toExcel), nil
}

// FromExcel is the reverse of ToExcel. The result starts with '='.
func FromExcel(text string) (string, error) {
	body := s2v.DecodeFormula(formula.Prefix + text)
	tokens, err := formula.Tokenize(strings.TrimPrefix(body, formula.Prefix))
	if err != nil {
		return "", err
	}
	return formula.Prefix + joinTokens(tokens, ';', fromExcel), nil
}

func joinTokens(tokens []formula.Token, sep byte, names map[string]string) string {
	var buf strings.Builder
	for _, t := range tokens {
		switch t.Type {
		case formula.ArgSep:
			buf.WriteByte(sep)
		case formula.Function:
			if n, ok := names[t.Literal]; ok {
				buf.WriteString(n)
				break
			}
			buf.WriteString(t.Literal)
		default:
			buf.WriteString(t.Literal)
		}
	}
	return buf.String()
}

// WriteXLSX writes the sheet as a workbook of one sheet. Formulas are kept
// along with the value they give when it can be computed.
func WriteXLSX(w io.Writer, sh *grid.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := f.GetSheetName(0)
	for pos, c := range sh.Cells() {
		var (
			addr = pos.Addr()
			err  error
		)
		switch c := c.(type) {
		case grid.Number:
			err = f.SetCellFloat(name, addr, float64(c), -1, 64)
		case grid.Text:
			err = f.SetCellStr(name, addr, string(c))
		case *grid.Formula:
			if n, err1 := c.Number(sh); err1 == nil {
				if err = f.SetCellFloat(name, addr, n, -1, 64); err != nil {
					break
				}
			}
			var text string
			if text, err = ToExcel(c.Raw()); err == nil {
				err = f.SetCellFormula(name, addr, text)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", addr, err)
		}
	}
	return f.Write(w)
}

// ReadXLSX creates a sheet from the first sheet of a workbook. Cells that can
// not be assigned are reported in the error while the sheet is still
// returned.
func ReadXLSX(r io.Reader, minimum layout.Dimension, opts ...grid.Option) (*grid.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list := f.GetSheetList()
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	name := list[0]
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	size := s2v.Extent(rows).Max(minimum)
	sh, err := grid.New(size.Lines, size.Columns, opts...)
	if err != nil {
		return nil, err
	}
	var errs []error
	for i, row := range rows {
		for j, str := range row {
			pos := layout.Position{
				Line:   int64(i) + 1,
				Column: int64(j) + 1,
			}
			text, err := f.GetCellFormula(name, pos.Addr())
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if text != "" {
				if str, err = FromExcel(text); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", pos, err))
					continue
				}
			}
			if str == "" {
				continue
			}
			if err := sh.Assign(pos, str); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return sh, errors.Join(errs...)
}
