package format

import (
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/value"
	"github.com/mattn/go-runewidth"
)

type Formatter interface {
	Format(float64) string
}

type plainFormatter struct{}

// Plain writes numbers with the fewest digits needed.
func Plain() Formatter {
	return plainFormatter{}
}

func (plainFormatter) Format(f float64) string {
	return value.FormatFloat(f)
}

// Parse gives the formatter of pattern, or Plain when pattern is empty.
func Parse(pattern string) (Formatter, error) {
	if pattern == "" {
		return Plain(), nil
	}
	return ParseNumberFormatter(pattern)
}

// Display renders what a cell shows. Numeric cells other than text go
// through f, text is shown as is. A failing formula shows its error code.
func Display(v grid.Value, err error, f Formatter) string {
	if err != nil {
		return ErrorCode(err)
	}
	if v.Kind == value.KindText || !v.Numeric {
		return v.Text
	}
	if v.Kind == value.KindEmpty {
		return ""
	}
	return f.Format(v.Number)
}

// Fit pads or truncates str so that it fills exactly width columns on a
// terminal. Numbers are aligned on the right.
func Fit(str string, width int, right bool) string {
	if width <= 0 {
		return str
	}
	if runewidth.StringWidth(str) > width {
		return runewidth.Truncate(str, width, "~")
	}
	if right {
		return runewidth.FillLeft(str, width)
	}
	return runewidth.FillRight(str, width)
}
