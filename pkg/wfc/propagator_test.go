package wfc

import "testing"

func TestPropagateFromNarrowsNeighbors(t *testing.T) {
	c := NewModuleCatalog(urbanCatalog())
	g := NewGrid(3, 1, c)
	prop := newPropagator(g, c)

	g.PinTo(0, 0, "H")
	g.at(0, 0).isCollapsed = true
	idx, _ := c.IndexOf("H")
	g.at(0, 0).chosenIndex = idx

	if !prop.propagateFrom(0, 0) {
		t.Fatal("propagateFrom reported contradiction on a satisfiable setup")
	}

	ids := g.PossibleModuleIds(1, 0)
	want := map[ModuleId]bool{"R": true, "H": true}
	if len(ids) != len(want) {
		t.Fatalf("neighbor possibilities = %v, want exactly %v", ids, want)
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected surviving possibility %q next to H", id)
		}
	}

	// The far cell keeps every possibility: (1,0) may still be R, and R
	// supports every module on its right.
	if g.at(2, 0).Entropy() != c.Len() {
		t.Errorf("far cell entropy = %d, want unchanged %d", g.at(2, 0).Entropy(), c.Len())
	}
}

func TestPropagateFromDetectsContradiction(t *testing.T) {
	c := NewModuleCatalog(urbanCatalog())
	g := NewGrid(2, 1, c)
	prop := newPropagator(g, c)

	// Force the incompatible pair H|C to sit next to each other by hand,
	// bypassing the collapser, to exercise the contradiction path directly.
	g.PinTo(0, 0, "H")
	g.at(0, 0).isCollapsed = true
	hIdx, _ := c.IndexOf("H")
	g.at(0, 0).chosenIndex = hIdx

	g.PinTo(1, 0, "C")

	if prop.propagateFrom(0, 0) {
		t.Fatal("expected propagateFrom to detect the H-C incompatibility")
	}
}

func TestPropagateFromIsNoOpWhenAlreadyConsistent(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(2, 2, c)
	prop := newPropagator(g, c)

	// Every cell starts fully open and mutually compatible; propagation
	// from any cell should change nothing.
	before := make([]int, len(g.cells))
	for i := range g.cells {
		before[i] = g.cells[i].possible.count()
	}
	if !prop.propagateFrom(0, 0) {
		t.Fatal("propagateFrom should not contradict on a fully open grid")
	}
	for i := range g.cells {
		if g.cells[i].possible.count() != before[i] {
			t.Errorf("cell %d entropy changed from %d to %d on a no-op propagation", i, before[i], g.cells[i].possible.count())
		}
	}
}
