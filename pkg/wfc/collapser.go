package wfc

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// collapser is the pure helper that picks a cell (lowest entropy with
// tie-break) and a module within it (weighted random over permitted
// options), mirroring the teacher's LabelingStrategy split between variable
// selection (labeling.go) and value ordering — except here value selection
// is a single weighted draw rather than an ordered list, since §4.3 asks for
// "weighted categorical sampling," not branch-and-retry over an ordering.
type collapser struct {
	grid    *Grid
	catalog *ModuleCatalog
}

func newCollapser(grid *Grid, catalog *ModuleCatalog) *collapser {
	return &collapser{grid: grid, catalog: catalog}
}

// selectTarget scans every cell (§4.3 step 1-3), finds the minimum entropy
// E* >= 1 among uncollapsed cells, and tie-breaks among the cells at E*.
// found is false iff every cell is collapsed or has empty possibilities;
// contradiction reports whether at least one uncollapsed cell has zero
// possibilities (which found=false alone cannot distinguish from "done").
func (c *collapser) selectTarget(rng *rand.Rand, heuristicsOn bool) (cell *Cell, found bool, contradiction bool) {
	minEntropy := -1
	var tied []*Cell

	for i := range c.grid.cells {
		cur := &c.grid.cells[i]
		if cur.isCollapsed {
			continue
		}
		e := cur.Entropy()
		if e == 0 {
			contradiction = true
			continue
		}
		switch {
		case minEntropy == -1 || e < minEntropy:
			minEntropy = e
			tied = tied[:0]
			tied = append(tied, cur)
		case e == minEntropy:
			tied = append(tied, cur)
		}
	}

	if len(tied) == 0 {
		return nil, false, contradiction
	}
	if len(tied) == 1 {
		return tied[0], true, contradiction
	}

	if heuristicsOn {
		tied = c.frontierBias(tied)
		if len(tied) == 1 {
			return tied[0], true, contradiction
		}
	}

	return tied[rng.Intn(len(tied))], true, contradiction
}

// frontierBias narrows tied to the subset with the greatest number of
// already-collapsed 4-neighbors (§4.3, heuristic tie-breaking mode): "grow
// the frontier" reduces contradiction rate on structured rule sets.
func (c *collapser) frontierBias(tied []*Cell) []*Cell {
	bestCount := -1
	var best []*Cell
	for _, cell := range tied {
		n := c.collapsedNeighborCount(cell.X, cell.Y)
		switch {
		case n > bestCount:
			bestCount = n
			best = best[:0]
			best = append(best, cell)
		case n == bestCount:
			best = append(best, cell)
		}
	}
	return best
}

func (c *collapser) collapsedNeighborCount(x, y int) int {
	n := 0
	for _, d := range directionOrder {
		nx, ny, ok := c.grid.Neighbor(x, y, d)
		if !ok {
			continue
		}
		if c.grid.at(nx, ny).isCollapsed {
			n++
		}
	}
	return n
}

// chooseModule filters cell's possibilities to those not at their global cap
// and performs weighted categorical sampling over the survivors (§4.3 steps
// 1-3), using gonum's sampleuv.Weighted rather than a hand-rolled
// cumulative-weight walk. ok is false iff every possibility is capped out —
// a "cap exhausted" failure, distinct from a cell-level contradiction, that
// the Engine must treat as backtrackable.
func (c *collapser) chooseModule(cell *Cell, counts *globalCounters, rng *rand.Rand) (idx int, ok bool) {
	candidates := make([]int, 0, cell.possible.count())
	cell.possible.iterate(func(i int) {
		if counts.underCap(i) {
			candidates = append(candidates, i)
		}
	})
	if len(candidates) == 0 {
		return 0, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	weights := make([]float64, len(candidates))
	for i, idx := range candidates {
		weights[i] = c.catalog.ModuleAt(idx).Weight
	}

	w := sampleuv.NewWeighted(weights, rng)
	picked, pickOk := w.Take()
	if !pickOk {
		// All weights exhausted to zero; fall back to the first candidate
		// rather than reporting a spurious contradiction.
		return candidates[0], true
	}
	return candidates[picked], true
}

// commitCollapse sets the cell to collapsed at idx, narrows its possibility
// set to the singleton {idx}, and increments the global counter (§4.3,
// commitCollapse).
func (c *collapser) commitCollapse(cell *Cell, idx int, counts *globalCounters) {
	cell.isCollapsed = true
	cell.chosenIndex = idx
	singleton := newEmptyPossibilitySet(c.catalog.Len())
	singleton.set(idx)
	cell.possible.restoreFrom(singleton)
	counts.increment(idx)
}
