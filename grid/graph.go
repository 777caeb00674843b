package grid

import (
	"slices"

	"github.com/edwingeng/deque"
	"github.com/midbel/gridcalc/layout"
)

type set map[layout.Position]struct{}

func (s set) list() []layout.Position {
	list := make([]layout.Position, 0, len(s))
	for p := range s {
		list = append(list, p)
	}
	slices.SortFunc(list, layout.Compare)
	return list
}

// Graph records which cells a formula reads (dependsOn) and, for every cell,
// which formulas read it (dependents). Both maps are kept as exact inverses
// of each other. Ranges are expanded before edges are stored.
type Graph struct {
	dependsOn  map[layout.Position]set
	dependents map[layout.Position]set
}

func NewGraph() *Graph {
	g := Graph{
		dependsOn:  make(map[layout.Position]set),
		dependents: make(map[layout.Position]set),
	}
	return &g
}

// WouldCycle reports whether giving at the dependencies deps closes a loop,
// that is whether at can be reached from one of deps by following the
// current dependsOn edges.
func (g *Graph) WouldCycle(at layout.Position, deps []layout.Position) bool {
	if len(deps) == 0 {
		return false
	}
	var (
		seen  = make(set)
		stack = deque.NewDeque()
	)
	for _, d := range deps {
		stack.PushBack(d)
	}
	for !stack.Empty() {
		pos := stack.PopBack().(layout.Position)
		if pos == at {
			return true
		}
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		for next := range g.dependsOn[pos] {
			stack.PushBack(next)
		}
	}
	return false
}

// Update replaces the outgoing edges of at by deps.
func (g *Graph) Update(at layout.Position, deps []layout.Position) {
	g.remove(at)
	if len(deps) == 0 {
		return
	}
	out := make(set)
	for _, d := range deps {
		out[d] = struct{}{}
		in, ok := g.dependents[d]
		if !ok {
			in = make(set)
			g.dependents[d] = in
		}
		in[at] = struct{}{}
	}
	g.dependsOn[at] = out
}

func (g *Graph) remove(at layout.Position) {
	for d := range g.dependsOn[at] {
		in := g.dependents[d]
		delete(in, at)
		if len(in) == 0 {
			delete(g.dependents, d)
		}
	}
	delete(g.dependsOn, at)
}

// Walk calls fn with at and then, depth first, with every position that
// depends on at directly or not. A position reached through several paths
// is given to fn more than once.
func (g *Graph) Walk(at layout.Position, fn func(layout.Position)) {
	fn(at)
	for d := range g.dependents[at] {
		g.Walk(d, fn)
	}
}

func (g *Graph) DependsOn(at layout.Position) []layout.Position {
	return g.dependsOn[at].list()
}

func (g *Graph) Dependents(at layout.Position) []layout.Position {
	return g.dependents[at].list()
}
