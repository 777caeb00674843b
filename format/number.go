package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrPattern = errors.New("invalid pattern")

// numberPattern is a compiled pattern such as #,##0.00: '0' is a digit that
// is always written, '#' a digit written only when significant, ',' turns
// on thousands grouping and a leading '+' always writes the sign.
type numberPattern struct {
	plus    bool
	group   bool
	padding int
	fracMin int
	fracMax int
}

func ParseNumberFormatter(pattern string) (Formatter, error) {
	var np numberPattern
	whole, frac, _ := strings.Cut(pattern, ".")
	if rest, ok := strings.CutPrefix(whole, "+"); ok {
		np.plus = true
		whole = rest
	}
	if whole == "" {
		return nil, fmt.Errorf("%q: %w: no integral part", pattern, ErrPattern)
	}
	if err := np.compileWhole(whole); err != nil {
		return nil, fmt.Errorf("%q: %w", pattern, err)
	}
	if err := np.compileFrac(frac); err != nil {
		return nil, fmt.Errorf("%q: %w", pattern, err)
	}
	return np, nil
}

// compileWhole reads the integral part from its last digit: mandatory
// digits must come before any optional one.
func (np *numberPattern) compileWhole(str string) error {
	optional := false
	for i := len(str) - 1; i >= 0; i-- {
		switch c := str[i]; {
		case c == ',':
			np.group = true
		case c == '#':
			optional = true
		case c == '0' && !optional:
			np.padding++
		default:
			return fmt.Errorf("%w: unexpected %c in integral part", ErrPattern, c)
		}
	}
	return nil
}

func (np *numberPattern) compileFrac(str string) error {
	optional := false
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case c == '#':
			optional = true
		case c == '0' && !optional:
			np.fracMin++
		default:
			return fmt.Errorf("%w: unexpected %c in fractional part", ErrPattern, c)
		}
		np.fracMax++
	}
	return nil
}

func (np numberPattern) Format(f float64) string {
	scale := math.Pow10(np.fracMax)
	f = math.Round(f*scale) / scale
	// -0 is written 0
	if f == 0 {
		f = 0
	}
	var (
		negative    = math.Signbit(f)
		digits      = strconv.FormatFloat(math.Abs(f), 'f', np.fracMax, 64)
		whole, frac = splitDigits(digits)
		buf         strings.Builder
	)
	frac = strings.TrimRight(frac, "0")
	if n := np.fracMin - len(frac); n > 0 {
		frac += strings.Repeat("0", n)
	}
	if n := np.padding - len(whole); n > 0 {
		whole = strings.Repeat("0", n) + whole
	}
	switch {
	case negative:
		buf.WriteByte('-')
	case np.plus:
		buf.WriteByte('+')
	}
	if np.group {
		writeGroups(&buf, whole)
	} else {
		buf.WriteString(whole)
	}
	if frac != "" {
		buf.WriteByte('.')
		buf.WriteString(frac)
	}
	return buf.String()
}

func splitDigits(str string) (string, string) {
	whole, frac, _ := strings.Cut(str, ".")
	return whole, frac
}

func writeGroups(buf *strings.Builder, digits string) {
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	buf.WriteString(digits[:min(lead, len(digits))])
	for i := lead; i < len(digits); i += 3 {
		buf.WriteByte(',')
		buf.WriteString(digits[i : i+3])
	}
}
