package value

import (
	"testing"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		Input string
		Want  float64
		Ok    bool
	}{
		{
			Input: "42",
			Want:  42,
			Ok:    true,
		},
		{
			Input: " -3.5 ",
			Want:  -3.5,
			Ok:    true,
		},
		{
			Input: ".5",
			Want:  0.5,
			Ok:    true,
		},
		{
			Input: "",
			Ok:    false,
		},
		{
			Input: "foobar",
			Ok:    false,
		},
		{
			Input: "=A1",
			Ok:    false,
		},
	}
	for _, c := range tests {
		got, ok := ParseFloat(c.Input)
		if ok != c.Ok {
			t.Errorf("%q: parse result mismatched! want %t, got %t", c.Input, c.Ok, ok)
			continue
		}
		if ok && got != c.Want {
			t.Errorf("%q: number mismatched! want %f, got %f", c.Input, c.Want, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		Input float64
		Want  string
	}{
		{
			Input: 30,
			Want:  "30",
		},
		{
			Input: 2.5,
			Want:  "2.5",
		},
		{
			Input: -0.125,
			Want:  "-0.125",
		},
	}
	for _, c := range tests {
		if got := FormatFloat(c.Input); got != c.Want {
			t.Errorf("%f: format mismatched! want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindEmpty:   "EMPTY",
		KindText:    "TEXT",
		KindNumber:  "NUMERIC",
		KindFormula: "FORMULA",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("kind mismatched! want %s, got %s", want, got)
		}
	}
}
