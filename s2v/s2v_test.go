package s2v

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
)

func TestEncodeFormula(t *testing.T) {
	tests := []struct {
		Raw  string
		Want string
	}{
		{
			Raw:  "=SUM(A1;A2)",
			Want: "=SUM(A1,A2)",
		},
		{
			Raw:  "=SUM(A1;MAX(B1;B2))+MIN(C1:C3;4)",
			Want: "=SUM(A1,MAX(B1,B2))+MIN(C1:C3,4)",
		},
		{
			Raw:  "=A1+A2",
			Want: "=A1+A2",
		},
		{
			Raw:  "=)(;",
			Want: "=)(,",
		},
		{
			Raw:  "=));(",
			Want: "=));(",
		},
	}
	for _, c := range tests {
		got := EncodeFormula(c.Raw)
		if got != c.Want {
			t.Errorf("%s: encoded mismatched! want %s, got %s", c.Raw, c.Want, got)
		}
		if back := DecodeFormula(got); back != c.Raw {
			t.Errorf("%s: decoded mismatched! want %s, got %s", c.Raw, c.Raw, back)
		}
	}
}

func TestReader(t *testing.T) {
	input := "1;2;;\r\n\n=SUM(A1,A2);text\nlast"
	rs := NewReader(strings.NewReader(input))
	all, err := rs.ReadAll()
	if err != nil {
		t.Fatalf("fail to read: %s", err)
	}
	want := [][]string{
		{"1", "2", "", ""},
		{""},
		{"=SUM(A1,A2)", "text"},
		{"last"},
	}
	if len(all) != len(want) {
		t.Fatalf("lines mismatched! want %d, got %d", len(want), len(all))
	}
	for i := range want {
		if strings.Join(all[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("line %d: fields mismatched! want %q, got %q", i+1, want[i], all[i])
		}
	}
}

func TestSave(t *testing.T) {
	sh, err := grid.New(3, 3)
	if err != nil {
		t.Fatalf("fail to create sheet: %s", err)
	}
	sh.Assign(layout.ParsePosition("A1"), "1")
	sh.Assign(layout.ParsePosition("C1"), "hello")
	sh.Assign(layout.ParsePosition("B2"), "=SUM(A1;A1)")

	var buf strings.Builder
	if err := Save(&buf, sh); err != nil {
		t.Fatalf("fail to save: %s", err)
	}
	want := "1;;hello\n;=SUM(A1,A1)\n\n"
	if got := buf.String(); got != want {
		t.Errorf("output mismatched! want %q, got %q", want, got)
	}
}

func TestLoad(t *testing.T) {
	sh, err := grid.New(2, 2)
	if err != nil {
		t.Fatalf("fail to create sheet: %s", err)
	}
	input := "1;2;3\n=SUM(A1,B1);5;6\n7;8;9\n"
	if err := Load(strings.NewReader(input), sh); err != nil {
		t.Fatalf("fail to load: %s", err)
	}
	tests := []struct {
		Addr string
		Raw  string
	}{
		{
			Addr: "A1",
			Raw:  "1",
		},
		{
			Addr: "B1",
			Raw:  "2",
		},
		{
			Addr: "A2",
			Raw:  "=SUM(A1;B1)",
		},
		{
			Addr: "B2",
			Raw:  "5",
		},
	}
	for _, c := range tests {
		got, err := sh.Cell(layout.ParsePosition(c.Addr))
		if err != nil {
			t.Errorf("%s: fail to get cell: %s", c.Addr, err)
			continue
		}
		if got.Raw() != c.Raw {
			t.Errorf("%s: raw mismatched! want %s, got %s", c.Addr, c.Raw, got.Raw())
		}
	}
	n, err := sh.Number(layout.ParsePosition("A2"))
	if err != nil || n != 3 {
		t.Errorf("A2: unexpected result %f (%v)", n, err)
	}
}

func TestLoadFailures(t *testing.T) {
	sh, err := grid.New(2, 3)
	if err != nil {
		t.Fatalf("fail to create sheet: %s", err)
	}
	input := "=1+(;2;=A1\n=C2;=B2;=A2\n"
	err = Load(strings.NewReader(input), sh)
	if !errors.Is(err, formula.ErrSyntax) {
		t.Errorf("expected syntax error, got %v", err)
	}
	if !errors.Is(err, grid.ErrCircular) {
		t.Errorf("expected circular reference error, got %v", err)
	}
	if n, _ := sh.Number(layout.ParsePosition("B1")); n != 2 {
		t.Errorf("B1: value mismatched! want 2, got %f", n)
	}
}

func TestExtent(t *testing.T) {
	records := [][]string{
		{"1", "", ""},
		{""},
		{"a", "b", "c", ""},
		{""},
	}
	got := Extent(records)
	want := layout.Dimension{
		Lines:   3,
		Columns: 3,
	}
	if got != want {
		t.Errorf("extent mismatched! want %v, got %v", want, got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	sh, err := grid.New(4, 4)
	if err != nil {
		t.Fatalf("fail to create sheet: %s", err)
	}
	sh.Assign(layout.ParsePosition("A1"), "10")
	sh.Assign(layout.ParsePosition("A2"), "20")
	sh.Assign(layout.ParsePosition("B1"), "=MEAN(A1;A2;MAX(A1:A2))")
	sh.Assign(layout.ParsePosition("B3"), "note")

	file := filepath.Join(t.TempDir(), "sheet.s2v")
	if err := WriteFile(file, sh); err != nil {
		t.Fatalf("fail to write file: %s", err)
	}
	minimum := layout.Dimension{
		Lines:   2,
		Columns: 6,
	}
	other, err := ReadFile(file, minimum)
	if err != nil {
		t.Fatalf("fail to read file: %s", err)
	}
	size := other.Dimension()
	if size.Lines != 3 || size.Columns != 6 {
		t.Errorf("dimension mismatched! got %v", size)
	}
	for pos, c := range sh.Cells() {
		got, err := other.Cell(pos)
		if err != nil {
			t.Errorf("%s: fail to get cell: %s", pos, err)
			continue
		}
		if got.Raw() != c.Raw() {
			t.Errorf("%s: raw mismatched! want %s, got %s", pos, c.Raw(), got.Raw())
		}
	}
	if n, _ := other.Number(layout.ParsePosition("B1")); n != 50.0/3 {
		t.Errorf("B1: value mismatched! got %f", n)
	}
}

func TestLoadClearsCells(t *testing.T) {
	sh, err := grid.New(3, 3)
	if err != nil {
		t.Fatalf("fail to create sheet: %s", err)
	}
	sh.Assign(layout.ParsePosition("A1"), "10")
	sh.Assign(layout.ParsePosition("C3"), "stale")
	sh.Assign(layout.ParsePosition("C1"), "=SUM(A1:A3)")
	sh.Assign(layout.ParsePosition("B2"), "old")

	if err := Load(strings.NewReader("1;;=A2\n2\n"), sh); err != nil {
		t.Fatalf("fail to load: %s", err)
	}
	tests := []struct {
		Addr string
		Raw  string
	}{
		{
			Addr: "A1",
			Raw:  "1",
		},
		{
			Addr: "C1",
			Raw:  "=A2",
		},
		{
			Addr: "A2",
			Raw:  "2",
		},
		{
			Addr: "B2",
			Raw:  "",
		},
		{
			Addr: "C3",
			Raw:  "",
		},
	}
	for _, c := range tests {
		got, err := sh.Cell(layout.ParsePosition(c.Addr))
		if err != nil {
			t.Errorf("%s: fail to get cell: %s", c.Addr, err)
			continue
		}
		if got.Raw() != c.Raw {
			t.Errorf("%s: raw mismatched! want %q, got %q", c.Addr, c.Raw, got.Raw())
		}
	}
	if n, _ := sh.Number(layout.ParsePosition("C1")); n != 2 {
		t.Errorf("C1: value mismatched! want 2, got %f", n)
	}
	if got := sh.Dependents(layout.ParsePosition("A3")); len(got) != 0 {
		t.Errorf("A3: old edges should be gone, got %v", got)
	}
}

func TestWriterComma(t *testing.T) {
	var buf strings.Builder
	ws := NewWriter(&buf)
	ws.Comma = '\t'
	err := ws.WriteAll([][]string{{"1", "", "x"}, {}, {"=A1"}})
	if err != nil {
		t.Fatalf("fail to write: %s", err)
	}
	want := "1\t\tx\n\n=A1\n"
	if got := buf.String(); got != want {
		t.Errorf("output mismatched! want %q, got %q", want, got)
	}
}
