package layout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrAddress = errors.New("invalid address")

// Position is a 1-based cell coordinate. Its canonical string form is the
// column label followed by the line number (AA12).
type Position struct {
	Line   int64
	Column int64
}

// ParsePosition reads an address that is known to be well formed. Use
// ParseAddr for user input.
func ParsePosition(addr string) Position {
	var (
		pos    Position
		offset int
	)
	pos.Column, offset = ParseIndex(addr)
	pos.Line, _ = strconv.ParseInt(addr[offset:], 10, 64)
	return pos
}

// ParseAddr reads an address given by a user. Addresses whose line or
// column does not fit in an int64 are rejected.
func ParseAddr(addr string) (Position, error) {
	addr = strings.TrimSpace(addr)
	if !IsAddress(addr) {
		return Position{}, fmt.Errorf("%q: %w", addr, ErrAddress)
	}
	var (
		pos    Position
		offset int
		err    error
	)
	if pos.Column, offset = ParseIndex(addr); pos.Column <= 0 {
		return Position{}, fmt.Errorf("%q: %w: column too large", addr, ErrAddress)
	}
	if pos.Line, err = strconv.ParseInt(addr[offset:], 10, 64); err != nil {
		return Position{}, fmt.Errorf("%q: %w: line too large", addr, ErrAddress)
	}
	return pos, nil
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	return ColumnLabel(p.Column) + strconv.FormatInt(p.Line, 10)
}

func (p Position) String() string {
	return p.Addr()
}

func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func Compare(p, other Position) int {
	switch {
	case p.Equal(other):
		return 0
	case p.Less(other):
		return -1
	default:
		return 1
	}
}

func IsAddress(addr string) bool {
	size := len(addr)
	if size < 2 {
		return false
	}
	var offset int
	for offset < size {
		c := addr[offset]
		if c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		if c < 'A' || c > 'Z' {
			break
		}
		offset++
	}
	if offset == 0 || offset >= size || addr[offset] == '0' {
		return false
	}
	for offset < size {
		c := addr[offset]
		if c < '0' || c > '9' {
			return false
		}
		offset++
	}
	return offset == size
}

// ParseIndex decodes the leading column label of str (bijective base-26)
// and returns the index with the number of bytes consumed. The index is -1
// when the label is too long to fit in an int64.
func ParseIndex(str string) (int64, int) {
	if len(str) == 0 {
		return 0, 0
	}
	var (
		offset int
		index  int64
	)
	for offset < len(str) && isLetter(rune(str[offset])) {
		delta := byte('A')
		if isLower(rune(str[offset])) {
			delta = 'a'
		}
		digit := int64(str[offset] - delta + 1)
		if index >= 0 && index > (math.MaxInt64-digit)/26 {
			index = -1
		}
		if index >= 0 {
			index = index*26 + digit
		}
		offset++
	}
	return index, offset
}

func ColumnLabel(ix int64) string {
	var result []byte
	for ix > 0 {
		ix--
		result = append(result, byte('A'+ix%26))
		ix /= 26
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}
