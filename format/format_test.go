package format

import (
	"errors"
	"testing"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/value"
)

func TestNumberFormatter(t *testing.T) {
	tests := []struct {
		Pattern string
		Input   float64
		Want    string
	}{
		{
			Pattern: "###.##",
			Input:   42,
			Want:    "42",
		},
		{
			Pattern: "###.##",
			Input:   3.14159,
			Want:    "3.14",
		},
		{
			Pattern: "#,##0.00",
			Input:   1234567.891,
			Want:    "1,234,567.89",
		},
		{
			Pattern: "000.0",
			Input:   7,
			Want:    "007.0",
		},
		{
			Pattern: "+#.#",
			Input:   2.25,
			Want:    "+2.3",
		},
		{
			Pattern: "#.##",
			Input:   -12.5,
			Want:    "-12.5",
		},
		{
			Pattern: "#.00",
			Input:   -0.001,
			Want:    "0.00",
		},
	}
	for _, c := range tests {
		f, err := ParseNumberFormatter(c.Pattern)
		if err != nil {
			t.Errorf("%s: fail to parse pattern: %s", c.Pattern, err)
			continue
		}
		if got := f.Format(c.Input); got != c.Want {
			t.Errorf("%s(%f): results mismatched! want %s - got %s", c.Pattern, c.Input, c.Want, got)
		}
	}
}

func TestInvalidPattern(t *testing.T) {
	for _, pattern := range []string{".", "-", "+", ".00", "#x.0", "#.0a"} {
		if _, err := ParseNumberFormatter(pattern); !errors.Is(err, ErrPattern) {
			t.Errorf("%s: expected invalid pattern, got %v", pattern, err)
		}
	}
}

func TestDisplay(t *testing.T) {
	nf, _ := ParseNumberFormatter("#,##0.0")
	tests := []struct {
		Value grid.Value
		Err   error
		Want  string
	}{
		{
			Value: grid.Value{Kind: value.KindNumber, Number: 1500, Numeric: true, Text: "1500"},
			Want:  "1,500.0",
		},
		{
			Value: grid.Value{Kind: value.KindText, Text: "hello"},
			Want:  "hello",
		},
		{
			Value: grid.Value{Kind: value.KindEmpty, Numeric: true},
			Want:  "",
		},
		{
			Value: grid.Value{Kind: value.KindFormula},
			Err:   formula.ErrDivZero,
			Want:  "#DIV/0!",
		},
		{
			Value: grid.Value{Kind: value.KindFormula},
			Err:   grid.ErrBounds,
			Want:  "#REF!",
		},
	}
	for _, c := range tests {
		if got := Display(c.Value, c.Err, nf); got != c.Want {
			t.Errorf("display mismatched! want %q, got %q", c.Want, got)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		Input string
		Width int
		Right bool
		Want  string
	}{
		{
			Input: "abc",
			Width: 5,
			Want:  "abc  ",
		},
		{
			Input: "12",
			Width: 5,
			Right: true,
			Want:  "   12",
		},
		{
			Input: "abcdefgh",
			Width: 5,
			Want:  "abcd~",
		},
	}
	for _, c := range tests {
		if got := Fit(c.Input, c.Width, c.Right); got != c.Want {
			t.Errorf("%s: fit mismatched! want %q, got %q", c.Input, c.Want, got)
		}
	}
}

func TestNumberFormatterGrouping(t *testing.T) {
	tests := []struct {
		Input float64
		Want  string
	}{
		{Input: 0, Want: "0"},
		{Input: 999, Want: "999"},
		{Input: 1000, Want: "1,000"},
		{Input: -123456, Want: "-123,456"},
		{Input: 99999.5, Want: "100,000"},
	}
	f, err := ParseNumberFormatter("#,###")
	if err != nil {
		t.Fatalf("fail to parse pattern: %s", err)
	}
	for _, c := range tests {
		if got := f.Format(c.Input); got != c.Want {
			t.Errorf("%f: results mismatched! want %s - got %s", c.Input, c.Want, got)
		}
	}
}
