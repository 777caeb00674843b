package value

import (
	"strconv"
	"strings"
)

// Kind tells what a cell holds.
type Kind int8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY"
	case KindText:
		return "TEXT"
	case KindNumber:
		return "NUMERIC"
	case KindFormula:
		return "FORMULA"
	default:
		return "UNKNOWN"
	}
}

// FormatFloat gives the shortest text that reads back as f.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseFloat reads a number the way raw cell input is classified: blanks
// around the number are ignored.
func ParseFloat(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(str, 64)
	return f, err == nil
}
