package wfc

// propagator implements the AC-3-style worklist of §4.4: after any change
// that reduces a cell's possibility set, it removes neighbor possibilities
// that no longer have a supporting value in the reduced cell. It is a pure
// helper over a Grid's existing cells and the catalog's precomputed
// compatibility — apart from a count of the last call's worklist pops it
// owns no state of its own, mirroring the teacher's
// PropagationConstraint helpers in pkg/minikanren/propagation.go, which are
// likewise stateless transformations driven by a caller-owned store.
type propagator struct {
	grid    *Grid
	catalog *ModuleCatalog
	visited int
}

func newPropagator(grid *Grid, catalog *ModuleCatalog) *propagator {
	return &propagator{grid: grid, catalog: catalog}
}

// Visited returns the number of worklist pops performed by the most recent
// propagateFrom call, a proxy for propagation depth that telemetry observes.
func (p *propagator) Visited() int { return p.visited }

type coord struct{ x, y int }

// propagateFrom runs arc-consistency outward from (x,y) until the worklist
// drains or a neighbor's possibility set becomes empty. Returns false on
// contradiction (§4.4, "return CONTRADICTION"); the Engine is responsible
// for turning that into a backtrack.
//
// The worklist is a LIFO stack, which the spec permits ("the worklist may be
// a stack or queue; LIFO is acceptable"); termination follows because each
// push corresponds to at least one possibility removed from a finite set.
func (p *propagator) propagateFrom(x, y int) bool {
	worklist := []coord{{x, y}}
	supported := newEmptyPossibilitySet(p.catalog.Len())
	var toRemove []int
	p.visited = 0

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		p.visited++

		cell := p.grid.at(cur.x, cur.y)

		for _, d := range directionOrder {
			nx, ny, ok := p.grid.Neighbor(cur.x, cur.y, d)
			if !ok {
				continue
			}
			neighbor := p.grid.at(nx, ny)
			if neighbor.isCollapsed {
				continue
			}

			// supported = union over s in cell.possible of compat[s][d]
			for i := range supported.words {
				supported.words[i] = 0
			}
			cell.possible.iterate(func(s int) {
				bits := p.catalog.compatiblePartnersBits(s, d)
				for i := range supported.words {
					supported.words[i] |= bits.words[i]
				}
			})

			toRemove = toRemove[:0]
			neighbor.possible.iterate(func(c int) {
				if !supported.has(c) {
					toRemove = append(toRemove, c)
				}
			})

			if len(toRemove) == 0 {
				continue
			}
			for _, c := range toRemove {
				neighbor.possible.remove(c)
			}
			if neighbor.possible.count() == 0 {
				return false
			}
			worklist = append(worklist, coord{nx, ny})
		}
	}
	return true
}
