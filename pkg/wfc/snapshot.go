package wfc

// snapshot captures a single speculative choice and the full pre-collapse
// state (§3, Snapshot). The full-grid copy is chosen over delta-logging for
// simplicity and correctness under propagation cascades (§4.5) — the same
// trade-off the teacher's DFSSearch makes with its trail/frame stack
// (search.go), except the teacher's trail is a log of individual domain
// narrowings replayed on unwind, while here the grid's cells are plain
// value data (§9) and a full copy is cheap enough to take unconditionally.
type snapshot struct {
	cellX, cellY  int
	attemptedIdx  int
	possibilities []*possibilitySet // one clone per grid cell, row-major
	counts        []int
}

// snapshotStack is the LIFO of Snapshots, empty at start (§3,
// SnapshotStack). It is the only authority that rewinds Grid/counters
// state.
type snapshotStack struct {
	grid     *Grid
	counters *globalCounters
	frames   []*snapshot
	maxDepth int // 0 means unbounded
}

func newSnapshotStack(grid *Grid, counters *globalCounters, maxDepth int) *snapshotStack {
	return &snapshotStack{grid: grid, counters: counters, maxDepth: maxDepth}
}

func (s *snapshotStack) depth() int { return len(s.frames) }

// push constructs and pushes a Snapshot immediately before a speculative
// collapse is committed (§4.5). Returns *OutOfBudgetError if maxDepth is set
// and would be exceeded (§5, §7).
func (s *snapshotStack) push(x, y, attemptedIdx int) error {
	if s.maxDepth > 0 && len(s.frames)+1 > s.maxDepth {
		return &OutOfBudgetError{Depth: len(s.frames) + 1, Limit: s.maxDepth}
	}
	possibilities := make([]*possibilitySet, len(s.grid.cells))
	for i := range s.grid.cells {
		possibilities[i] = s.grid.cells[i].possible.clone()
	}
	s.frames = append(s.frames, &snapshot{
		cellX:         x,
		cellY:         y,
		attemptedIdx:  attemptedIdx,
		possibilities: possibilities,
		counts:        s.counters.snapshot(),
	})
	return nil
}

// backtrack implements §4.5 steps 1-8. It pops snapshots and forbids the
// rejected choice until either propagation succeeds from the restored
// target cell, or the stack empties (final UNSATISFIABLE). Implemented
// iteratively rather than by literal recursion so a long chain of nested
// contradictions cannot grow the Go call stack.
func (s *snapshotStack) backtrack(prop *propagator) bool {
	for {
		if len(s.frames) == 0 {
			return false
		}
		frame := s.frames[len(s.frames)-1]
		s.frames = s.frames[:len(s.frames)-1]

		for i := range s.grid.cells {
			cell := &s.grid.cells[i]
			cell.possible.restoreFrom(frame.possibilities[i])
			cell.isCollapsed = false
			cell.chosenIndex = -1
		}
		s.counters.restore(frame.counts)

		target := s.grid.at(frame.cellX, frame.cellY)
		target.possible.remove(frame.attemptedIdx)

		if target.possible.count() == 0 {
			// The cell itself had no other options; keep unwinding.
			continue
		}
		if !prop.propagateFrom(frame.cellX, frame.cellY) {
			// Restoring this choice still contradicts; keep unwinding.
			continue
		}
		return true
	}
}
