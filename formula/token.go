package formula

import (
	"fmt"
	"strings"
)

type Kind int8

const (
	Invalid Kind = iota
	Number
	Operator
	CellRef
	Function
	LeftParen
	RightParen
	ArgSep
	ArgMark
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Operator:
		return "operator"
	case CellRef:
		return "cell"
	case Function:
		return "function"
	case LeftParen:
		return "lparen"
	case RightParen:
		return "rparen"
	case ArgSep:
		return "separator"
	case ArgMark:
		return "marker"
	default:
		return "invalid"
	}
}

type Token struct {
	Literal  string
	Type     Kind
	Position int
}

func makeToken(kind Kind, literal string, pos int) Token {
	return Token{
		Literal:  literal,
		Type:     kind,
		Position: pos,
	}
}

func (t Token) String() string {
	switch t.Type {
	case LeftParen:
		return "<lparen>"
	case RightParen:
		return "<rparen>"
	case ArgSep:
		return "<separator>"
	case ArgMark:
		return "<marker>"
	case Invalid:
		return "<invalid>"
	default:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
}

// IsRange reports whether a cell reference token spans two corners.
func (t Token) IsRange() bool {
	return t.Type == CellRef && strings.Contains(t.Literal, ":")
}

func (t Token) precedence() int {
	switch t.Literal {
	case "*", "/":
		return 2
	case "+", "-":
		return 1
	default:
		return 0
	}
}

// Dump writes the tokens separated by a blank, mostly for debugging and
// tests.
func Dump(tokens []Token) string {
	var str strings.Builder
	for i, t := range tokens {
		if i > 0 {
			str.WriteString(" ")
		}
		switch t.Type {
		case ArgMark:
			str.WriteString("|")
		case LeftParen:
			str.WriteString("(")
		case RightParen:
			str.WriteString(")")
		case ArgSep:
			str.WriteString(";")
		default:
			str.WriteString(t.Literal)
		}
	}
	return str.String()
}
