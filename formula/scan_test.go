package formula

import (
	"errors"
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		Expr  string
		Want  string
		Kinds []Kind
	}{
		{
			Expr:  "",
			Want:  "",
			Kinds: nil,
		},
		{
			Expr:  "1 + 2",
			Want:  "1 + 2",
			Kinds: []Kind{Number, Operator, Number},
		},
		{
			Expr:  "SUM(A1;B2)",
			Want:  "SUM ( A1 ; B2 )",
			Kinds: []Kind{Function, LeftParen, CellRef, ArgSep, CellRef, RightParen},
		},
		{
			Expr:  "sum(a1:b2)",
			Want:  "SUM ( A1:B2 )",
			Kinds: []Kind{Function, LeftParen, CellRef, RightParen},
		},
		{
			Expr:  "3.14*.5",
			Want:  "3.14 * .5",
			Kinds: []Kind{Number, Operator, Number},
		},
		{
			Expr:  "1.2.3",
			Want:  "1.2 .3",
			Kinds: []Kind{Number, Number},
		},
		{
			Expr:  "-A1",
			Want:  "- A1",
			Kinds: []Kind{Operator, CellRef},
		},
		{
			Expr:  "A1B",
			Want:  "A1 B",
			Kinds: []Kind{CellRef, Function},
		},
		{
			Expr:  "\tAA12 / zz3 ",
			Want:  "AA12 / ZZ3",
			Kinds: []Kind{CellRef, Operator, CellRef},
		},
		{
			Expr:  "B2:A1",
			Want:  "B2:A1",
			Kinds: []Kind{CellRef},
		},
	}
	for _, c := range tests {
		tokens, err := Tokenize(c.Expr)
		if err != nil {
			t.Errorf("%s: fail to tokenize: %s", c.Expr, err)
			continue
		}
		if got := Dump(tokens); got != c.Want {
			t.Errorf("%s: tokens mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
		var kinds []Kind
		for _, tok := range tokens {
			kinds = append(kinds, tok.Type)
		}
		if !slices.Equal(kinds, c.Kinds) {
			t.Errorf("%s: kinds mismatched! want %v, got %v", c.Expr, c.Kinds, kinds)
		}
	}
}

func TestTokenizePosition(t *testing.T) {
	tokens, err := Tokenize("SUM( A1 ; 12)")
	if err != nil {
		t.Fatalf("fail to tokenize: %s", err)
	}
	want := []int{0, 3, 5, 8, 10, 12}
	for i, tok := range tokens {
		if tok.Position != want[i] {
			t.Errorf("%s: position mismatched! want %d, got %d", tok, want[i], tok.Position)
		}
	}
}

func TestTokenizeInvalid(t *testing.T) {
	tests := []struct {
		Expr     string
		Position int
	}{
		{
			Expr:     "1 , 2",
			Position: 2,
		},
		{
			Expr:     "$A1",
			Position: 0,
		},
		{
			Expr:     "A1:",
			Position: 3,
		},
		{
			Expr:     "A1:B",
			Position: 4,
		},
		{
			Expr:     "A1:1",
			Position: 3,
		},
		{
			Expr:     "1 ^ 2",
			Position: 2,
		},
		{
			Expr:     "A1:B2:C3",
			Position: 5,
		},
		{
			Expr:     "SUM(A99999999999999999999)",
			Position: 4,
		},
		{
			Expr:     "1+A1:AAAAAAAAAAAAAAAAAAAA2",
			Position: 2,
		},
		{
			Expr:     "A0",
			Position: 0,
		},
	}
	for _, c := range tests {
		_, err := Tokenize(c.Expr)
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: expected syntax error, got %v", c.Expr, err)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%s: expected SyntaxError, got %T", c.Expr, err)
			continue
		}
		if se.Position != c.Position {
			t.Errorf("%s: position mismatched! want %d, got %d", c.Expr, c.Position, se.Position)
		}
	}
}
