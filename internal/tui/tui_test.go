package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
)

func createSheet(t *testing.T) *grid.Sheet {
	t.Helper()
	sh, err := grid.New(5, 5)
	if err != nil {
		t.Fatalf("fail to create sheet: %s", err)
	}
	return sh
}

func TestRunLines(t *testing.T) {
	var (
		sh    = createSheet(t)
		saved int
		out   strings.Builder
	)
	opts := Options{
		Save: func(_ *grid.Sheet) error {
			saved++
			return nil
		},
	}
	script := `
# comment
A1 = 10
a2 = 20
B1 = =SUM(A1;A2)
B1
A1 = =B1
A1 = 15
B1
deps B1
C9 = 1
save
quit
A3 = 1
`
	if err := RunLines(strings.NewReader(script), &out, sh, opts); err != nil {
		t.Fatalf("fail to run script: %s", err)
	}
	want := []string{
		"B1 (FORMULA) =SUM(A1;A2) -> 30",
		"error: A1: circular reference",
		"B1 (FORMULA) =SUM(A1;A2) -> 35",
		"B1 depends on: A1, A2",
		"B1 used by: -",
		"error: C9: position out of bounds",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("output mismatched! want %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d mismatched! want %q, got %q", i+1, want[i], got[i])
		}
	}
	if saved != 1 {
		t.Errorf("save should be called once, got %d", saved)
	}
	if c, _ := sh.Cell(layout.ParsePosition("A3")); c.Raw() != "" {
		t.Errorf("A3: lines after quit should be ignored")
	}
}

func sendKeys(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func runes(str string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(str)}
}

func TestModelMove(t *testing.T) {
	m := New(createSheet(t), Options{})
	sendKeys(m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyUp},
		runes("l"),
	)
	want := layout.ParsePosition("C2")
	if got := m.Cursor(); got != want {
		t.Errorf("cursor mismatched! want %s, got %s", want, got)
	}
	for range 10 {
		sendKeys(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp})
	}
	want = layout.ParsePosition("A1")
	if got := m.Cursor(); got != want {
		t.Errorf("cursor should stay in the grid! want %s, got %s", want, got)
	}
	for range 10 {
		sendKeys(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	}
	want = layout.ParsePosition("E5")
	if got := m.Cursor(); got != want {
		t.Errorf("cursor should stay in the grid! want %s, got %s", want, got)
	}
}

func TestModelEdit(t *testing.T) {
	sh := createSheet(t)
	sh.Assign(layout.ParsePosition("A2"), "4")
	m := New(sh, Options{})

	sendKeys(m,
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("=A2*3"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if n, err := sh.Number(layout.ParsePosition("A1")); err != nil || n != 12 {
		t.Errorf("A1: unexpected value %f (%v)", n, err)
	}
	if !strings.Contains(m.View(), "12") {
		t.Errorf("view should show the computed value")
	}

	sendKeys(m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEsc},
	)
	if n, _ := sh.Number(layout.ParsePosition("A2")); n != 4 {
		t.Errorf("A2: cancelled edit should not change the cell")
	}

	sendKeys(m,
		runes("="),
		runes("A1"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if !m.failed {
		t.Errorf("circular reference should be reported")
	}
	if n, _ := sh.Number(layout.ParsePosition("A2")); n != 4 {
		t.Errorf("A2: rejected edit should not change the cell")
	}
}
