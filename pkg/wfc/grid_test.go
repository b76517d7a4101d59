package wfc

import (
	"strings"
	"testing"
)

func TestNewGridStartsFullyOpen(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(3, 2, c)

	if g.Width != 3 || g.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", g.Width, g.Height)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.Cell(x, y)
			if cell.IsCollapsed() {
				t.Errorf("cell (%d,%d) should start uncollapsed", x, y)
			}
			if cell.Entropy() != c.Len() {
				t.Errorf("cell (%d,%d) entropy = %d, want %d", x, y, cell.Entropy(), c.Len())
			}
		}
	}
	if g.AllCollapsed() {
		t.Error("a fresh grid should not report AllCollapsed")
	}
}

func TestNewGridPanicsOnBadDimensions(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for dimensions %v", dims)
				}
			}()
			NewGrid(dims[0], dims[1], c)
		}()
	}
}

func TestGridCellPanicsOutOfBounds(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(2, 2, c)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on out-of-bounds access")
		}
		if _, ok := r.(*InvalidCoordinateError); !ok {
			t.Errorf("expected *InvalidCoordinateError, got %T", r)
		}
	}()
	g.Cell(5, 5)
}

func TestGridRemovePossibility(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(1, 1, c)

	if !g.RemovePossibility(0, 0, "R") {
		t.Fatal("expected RemovePossibility to report a change")
	}
	if g.RemovePossibility(0, 0, "R") {
		t.Error("removing an already-absent possibility should report no change")
	}
	ids := g.PossibleModuleIds(0, 0)
	if len(ids) != 1 || ids[0] != "G" {
		t.Errorf("PossibleModuleIds = %v, want [G]", ids)
	}
}

func TestGridPinTo(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(1, 1, c)

	g.PinTo(0, 0, "G")
	ids := g.PossibleModuleIds(0, 0)
	if len(ids) != 1 || ids[0] != "G" {
		t.Errorf("PossibleModuleIds after PinTo = %v, want [G]", ids)
	}
}

func TestGridNeighbor(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(2, 2, c)

	nx, ny, ok := g.Neighbor(0, 0, Right)
	if !ok || nx != 1 || ny != 0 {
		t.Errorf("Neighbor(0,0,Right) = (%d,%d,%v), want (1,0,true)", nx, ny, ok)
	}
	_, _, ok = g.Neighbor(0, 0, Top)
	if ok {
		t.Error("Neighbor(0,0,Top) should be out of bounds")
	}
}

func TestGridChosenModuleIdBeforeCollapse(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(1, 1, c)
	if _, ok := g.ChosenModuleId(0, 0); ok {
		t.Error("an uncollapsed cell should not report a chosen module")
	}
}

func TestGridRender(t *testing.T) {
	c := NewModuleCatalog(roadGrassCatalog())
	g := NewGrid(2, 1, c)
	g.PinTo(0, 0, "R")
	g.at(0, 0).isCollapsed = true
	g.at(0, 0).chosenIndex, _ = c.IndexOf("R")

	var sb strings.Builder
	if err := g.Render(&sb); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "R") || !strings.Contains(out, ".") {
		t.Errorf("Render() = %q, want it to contain both R and .", out)
	}
}
