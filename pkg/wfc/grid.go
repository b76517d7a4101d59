package wfc

import (
	"fmt"
	"io"
)

// Cell is a single grid position. Its possibility set (possible) is a bitset
// over catalog indices rather than a set of ModuleIds directly (§9: "Raw owning
// pointers into the grid... should become direct value storage with
// index-based addressing; snapshots then become cheap to clone since Cells
// are plain data").
type Cell struct {
	X, Y        int
	possible    *possibilitySet
	isCollapsed bool
	chosenIndex int // valid iff isCollapsed; -1 otherwise
}

// Entropy is the cardinality of the cell's possibility set (§4.2). This is
// the solver's actual selection metric, a faithful approximation of Shannon
// entropy when weights are comparable.
func (c *Cell) Entropy() int {
	return c.possible.count()
}

// IsCollapsed reports whether the cell has committed to a single module.
func (c *Cell) IsCollapsed() bool { return c.isCollapsed }

// Grid is the row-major 2D array of Cells the engine operates on.
type Grid struct {
	Width, Height int
	catalog       *ModuleCatalog
	cells         []Cell
}

// NewGrid constructs a width x height grid where every cell starts with
// possibleModules equal to the full set of catalog module ids (§4.2).
// Panics if width or height is less than 1.
func NewGrid(width, height int, catalog *ModuleCatalog) *Grid {
	if width < 1 || height < 1 {
		panic(&InvalidCatalogError{Reason: fmt.Sprintf("grid dimensions must be >= 1, got %dx%d", width, height)})
	}
	g := &Grid{Width: width, Height: height, catalog: catalog, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := g.at(x, y)
			c.X, c.Y = x, y
			c.possible = newFullPossibilitySet(catalog.Len())
			c.isCollapsed = false
			c.chosenIndex = -1
		}
	}
	return g
}

func (g *Grid) index(x, y int) int { return y*g.Width + x }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) checkBounds(x, y int) {
	if !g.inBounds(x, y) {
		panic(&InvalidCoordinateError{X: x, Y: y, Width: g.Width, Height: g.Height})
	}
}

func (g *Grid) at(x, y int) *Cell {
	return &g.cells[g.index(x, y)]
}

// Cell returns a pointer to the cell at (x,y). Panics on out-of-bounds
// coordinates (§7, InvalidCoordinate).
func (g *Grid) Cell(x, y int) *Cell {
	g.checkBounds(x, y)
	return g.at(x, y)
}

// RemovePossibility drops id from (x,y)'s possibility set if present.
// Returns whether the set actually changed. Does not itself propagate; the
// caller is responsible for checking emptiness and triggering propagation
// (§4.2).
func (g *Grid) RemovePossibility(x, y int, id ModuleId) bool {
	g.checkBounds(x, y)
	idx, ok := g.catalog.IndexOf(id)
	if !ok {
		return false
	}
	return g.at(x, y).possible.remove(idx)
}

// PinTo restricts (x,y) to exactly id by removing every other possibility.
// Used for initial hard constraints (§4.2).
func (g *Grid) PinTo(x, y int, id ModuleId) {
	g.checkBounds(x, y)
	idx, ok := g.catalog.IndexOf(id)
	if !ok {
		panic(&InvalidCatalogError{Reason: fmt.Sprintf("pinTo: unknown module id %q", id)})
	}
	cell := g.at(x, y)
	for i := 0; i < g.catalog.Len(); i++ {
		if i != idx {
			cell.possible.remove(i)
		}
	}
}

// ChosenModuleId returns the module id a collapsed cell committed to.
func (g *Grid) ChosenModuleId(x, y int) (ModuleId, bool) {
	g.checkBounds(x, y)
	cell := g.at(x, y)
	if !cell.isCollapsed {
		return "", false
	}
	return g.catalog.ModuleAt(cell.chosenIndex).Id, true
}

// PossibleModuleIds returns the module ids still possible at (x,y), in
// catalog order. Read-only diagnostic helper, not on the engine's hot path.
func (g *Grid) PossibleModuleIds(x, y int) []ModuleId {
	g.checkBounds(x, y)
	cell := g.at(x, y)
	ids := make([]ModuleId, 0, cell.possible.count())
	cell.possible.iterate(func(idx int) {
		ids = append(ids, g.catalog.ModuleAt(idx).Id)
	})
	return ids
}

// Neighbor returns the cell in direction d from (x,y) and whether it lies
// within the grid.
func (g *Grid) Neighbor(x, y int, d Direction) (nx, ny int, ok bool) {
	dx, dy := d.Offset()
	nx, ny = x+dx, y+dy
	return nx, ny, g.inBounds(nx, ny)
}

// AllCollapsed reports whether every cell in the grid has collapsed.
func (g *Grid) AllCollapsed() bool {
	for i := range g.cells {
		if !g.cells[i].isCollapsed {
			return false
		}
	}
	return true
}

// Render writes a plain-text dump of the grid, one row per line, each cell
// shown as its chosen module id (or "." while uncollapsed). This has no
// algorithmic content of its own — it mirrors the original implementation's
// console printGrid() debug helper (see SPEC_FULL.md §4) and is used by
// `wfcgen generate --format text` and by tests that want a human-readable
// failure dump.
func (g *Grid) Render(w io.Writer) error {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.at(x, y)
			var tok string
			if cell.isCollapsed {
				tok = string(g.catalog.ModuleAt(cell.chosenIndex).Id)
			} else {
				tok = "."
			}
			if _, err := fmt.Fprintf(w, "%s ", tok); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
