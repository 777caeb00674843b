package formula

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/midbel/gridcalc/layout"
)

type Scanner struct {
	input []byte
	pos   int
	next  int
	char  rune

	buf bytes.Buffer
}

// Scan prepares a scanner over a formula body, the formula text without
// its leading '='.
func Scan(body string) *Scanner {
	scan := Scanner{
		input: []byte(body),
	}
	scan.read()
	return &scan
}

// Tokenize splits a formula body into its infix tokens.
func Tokenize(body string) ([]Token, error) {
	var (
		scan   = Scan(body)
		tokens []Token
	)
	for {
		tok, err := scan.Scan()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Scan returns the next token or io.EOF once the input is exhausted.
func (s *Scanner) Scan() (Token, error) {
	s.skipBlanks()
	if s.done() {
		return Token{}, io.EOF
	}
	defer s.reset()

	var (
		tok Token
		err error
	)
	switch {
	case isDigit(s.char) || s.char == dot:
		tok = s.scanNumber()
	case isLetter(s.char):
		tok, err = s.scanWord()
	case isOperator(s.char):
		tok = makeToken(Operator, string(s.char), s.pos)
		s.read()
	case isDelimiter(s.char):
		tok = s.scanDelimiter()
	default:
		err = syntaxError(s.pos, "unexpected character '%c'", s.char)
	}
	return tok, err
}

func (s *Scanner) scanNumber() Token {
	var (
		pos = s.pos
		dec bool
	)
	for !s.done() {
		if s.char == dot {
			if dec {
				break
			}
			dec = true
		} else if !isDigit(s.char) {
			break
		}
		s.write()
		s.read()
	}
	return makeToken(Number, s.literal(), pos)
}

func (s *Scanner) scanWord() (Token, error) {
	pos := s.pos
	s.scanLetters()
	if !isDigit(s.char) || s.done() {
		name := strings.ToUpper(s.literal())
		return makeToken(Function, name, pos), nil
	}
	s.scanDigits()
	if s.done() || s.char != colon {
		return s.makeReference(pos)
	}
	s.write()
	s.read()
	if s.done() || !isLetter(s.char) {
		return Token{}, syntaxError(s.pos, "invalid range syntax")
	}
	s.scanLetters()
	if s.done() || !isDigit(s.char) {
		return Token{}, syntaxError(s.pos, "invalid range syntax")
	}
	s.scanDigits()
	return s.makeReference(pos)
}

func (s *Scanner) makeReference(pos int) (Token, error) {
	ref := strings.ToUpper(s.literal())
	for _, addr := range strings.Split(ref, ":") {
		if _, err := layout.ParseAddr(addr); err != nil {
			return Token{}, syntaxError(pos, "invalid reference %s", addr)
		}
	}
	return makeToken(CellRef, ref, pos), nil
}

func (s *Scanner) scanLetters() {
	for !s.done() && isLetter(s.char) {
		s.write()
		s.read()
	}
}

func (s *Scanner) scanDigits() {
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
}

func (s *Scanner) scanDelimiter() Token {
	var kind Kind
	switch s.char {
	case lparen:
		kind = LeftParen
	case rparen:
		kind = RightParen
	case semi:
		kind = ArgSep
	}
	tok := makeToken(kind, string(s.char), s.pos)
	s.read()
	return tok
}

func (s *Scanner) literal() string {
	return s.buf.String()
}

func (s *Scanner) write() {
	s.buf.WriteRune(s.char)
}

func (s *Scanner) reset() {
	s.buf.Reset()
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.pos = len(s.input)
		s.char = 0
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	s.char, s.pos, s.next = r, s.next, s.next+n
}

func (s *Scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) skipBlanks() {
	for !s.done() && isBlank(s.char) {
		s.read()
	}
}

const (
	semi   = ';'
	rparen = ')'
	lparen = '('
	space  = ' '
	tab    = '\t'
	plus   = '+'
	minus  = '-'
	star   = '*'
	slash  = '/'
	colon  = ':'
	dot    = '.'
	nl     = '\n'
	cr     = '\r'
)

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isBlank(c rune) bool {
	return c == space || c == tab || c == nl || c == cr
}

func isDelimiter(c rune) bool {
	return c == semi || c == lparen || c == rparen
}

func isOperator(c rune) bool {
	return c == plus || c == minus || c == slash || c == star
}
