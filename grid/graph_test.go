package grid

import (
	"slices"
	"testing"

	"github.com/midbel/gridcalc/layout"
)

func positions(addrs ...string) []layout.Position {
	var list []layout.Position
	for _, a := range addrs {
		list = append(list, layout.ParsePosition(a))
	}
	return list
}

func TestGraphUpdate(t *testing.T) {
	g := NewGraph()
	g.Update(layout.ParsePosition("C1"), positions("A1", "B1"))
	g.Update(layout.ParsePosition("D1"), positions("A1"))

	if got, want := g.Dependents(layout.ParsePosition("A1")), positions("C1", "D1"); !slices.Equal(got, want) {
		t.Errorf("dependents mismatched! want %v, got %v", want, got)
	}
	g.Update(layout.ParsePosition("C1"), positions("B2"))
	if got, want := g.Dependents(layout.ParsePosition("A1")), positions("D1"); !slices.Equal(got, want) {
		t.Errorf("dependents mismatched! want %v, got %v", want, got)
	}
	if got := g.Dependents(layout.ParsePosition("B1")); len(got) != 0 {
		t.Errorf("B1: expected no dependents, got %v", got)
	}
	g.Update(layout.ParsePosition("D1"), nil)
	if _, ok := g.dependsOn[layout.ParsePosition("D1")]; ok {
		t.Errorf("D1: expected no dependsOn entry")
	}
	if _, ok := g.dependents[layout.ParsePosition("A1")]; ok {
		t.Errorf("A1: expected no dependents entry")
	}
	checkInverse(t, g)
}

func TestGraphWouldCycle(t *testing.T) {
	g := NewGraph()
	g.Update(layout.ParsePosition("B1"), positions("A1"))
	g.Update(layout.ParsePosition("C1"), positions("B1", "A2"))

	tests := []struct {
		At   string
		Deps []string
		Want bool
	}{
		{
			At:   "A1",
			Deps: []string{"A1"},
			Want: true,
		},
		{
			At:   "A1",
			Deps: []string{"C1"},
			Want: true,
		},
		{
			At:   "A1",
			Deps: []string{"A2", "B2"},
			Want: false,
		},
		{
			At:   "A2",
			Deps: []string{"C1"},
			Want: true,
		},
		{
			At:   "D1",
			Deps: []string{"C1", "B1"},
			Want: false,
		},
		{
			At:   "A1",
			Deps: nil,
			Want: false,
		},
	}
	for _, c := range tests {
		got := g.WouldCycle(layout.ParsePosition(c.At), positions(c.Deps...))
		if got != c.Want {
			t.Errorf("%s <- %v: cycle mismatched! want %t, got %t", c.At, c.Deps, c.Want, got)
		}
	}
}

func TestGraphWalk(t *testing.T) {
	g := NewGraph()
	g.Update(layout.ParsePosition("B1"), positions("A1"))
	g.Update(layout.ParsePosition("C1"), positions("B1"))
	g.Update(layout.ParsePosition("D1"), positions("A1", "C1"))
	g.Update(layout.ParsePosition("E1"), positions("A2"))

	seen := make(map[layout.Position]int)
	g.Walk(layout.ParsePosition("A1"), func(p layout.Position) {
		seen[p]++
	})
	for _, p := range positions("A1", "B1", "C1", "D1") {
		if seen[p] == 0 {
			t.Errorf("%s: not visited", p)
		}
	}
	if seen[layout.ParsePosition("E1")] != 0 {
		t.Errorf("E1: should not be visited")
	}
}

func checkInverse(t *testing.T, g *Graph) {
	t.Helper()
	for at, deps := range g.dependsOn {
		for d := range deps {
			if _, ok := g.dependents[d][at]; !ok {
				t.Errorf("%s -> %s: missing dependents edge", at, d)
			}
		}
	}
	for d, in := range g.dependents {
		for at := range in {
			if _, ok := g.dependsOn[at][d]; !ok {
				t.Errorf("%s <- %s: missing dependsOn edge", d, at)
			}
		}
	}
}
