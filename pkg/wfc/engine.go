package wfc

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Engine orchestrates select -> snapshot -> collapse -> propagate ->
// backtrack (§4.6). It owns the grid, catalog, counters, snapshot stack,
// and the single seeded RNG every sub-decision draws from, in the fixed
// order target-selection-before-module-selection (§5).
type Engine struct {
	grid     *Grid
	catalog  *ModuleCatalog
	counters *globalCounters
	stack    *snapshotStack
	prop     *propagator
	coll     *collapser

	rng      *rand.Rand
	seeded   bool
	seedUsed int64

	heuristicsOn bool

	preFailed      bool
	relaxationUsed bool
	lastErr        error

	initialPossibilities []*possibilitySet
	initialCaptured      bool

	recorder       Recorder
	backtrackCount int
}

// NewEngine constructs an Engine over a fresh width x height grid (§6,
// new(width, height, modules)).
func NewEngine(width, height int, modules []Module) *Engine {
	catalog := NewModuleCatalog(modules)
	grid := NewGrid(width, height, catalog)
	counters := newGlobalCounters(catalog)
	return &Engine{
		grid:     grid,
		catalog:  catalog,
		counters: counters,
		stack:    newSnapshotStack(grid, counters, 0),
		prop:     newPropagator(grid, catalog),
		coll:     newCollapser(grid, catalog),
	}
}

// SetSnapshotBudget caps the SnapshotStack depth; 0 (the default) means
// unbounded. Exceeding the cap surfaces *OutOfBudgetError from Run (§5, §7).
func (e *Engine) SetSnapshotBudget(maxDepth int) {
	e.stack.maxDepth = maxDepth
}

// SetSeed fixes the RNG seed used by every random decision in the run
// (§4.6, §5, §6). Must be called before Run for deterministic output.
func (e *Engine) SetSeed(seed uint32) {
	e.rng = rand.New(rand.NewSource(uint64(seed)))
	e.seeded = true
	e.seedUsed = int64(seed)
}

func (e *Engine) ensureSeeded() {
	if e.seeded {
		return
	}
	seed := time.Now().UnixNano()
	e.rng = rand.New(rand.NewSource(uint64(seed)))
	e.seeded = true
	e.seedUsed = seed
	log.Info().Int64("seed", seed).Msg("wfc: no seed set, using clock seed; this run is not reproducible")
}

// SetGlobalModuleLimit sets or overwrites id's collapse cap (§4.6).
func (e *Engine) SetGlobalModuleLimit(id ModuleId, cap uint32) {
	e.counters.setLimit(id, int(cap))
}

// SetHeuristicTieBreaking toggles the frontier-growth tie-break bias of
// §4.3.
func (e *Engine) SetHeuristicTieBreaking(on bool) {
	e.heuristicsOn = on
}

// RemovePossibility applies an initial hard constraint, then eagerly
// propagates from (x,y) to fail fast on unsatisfiable setups (§4.6, "the
// Engine MAY propagate eagerly here or lazily on first step; eager
// propagation is recommended"). Must be called before Run.
func (e *Engine) RemovePossibility(x, y int, id ModuleId) {
	if e.preFailed {
		return
	}
	if !e.grid.RemovePossibility(x, y, id) {
		return
	}
	if e.grid.at(x, y).possible.count() == 0 {
		e.preFailed = true
		return
	}
	if !e.prop.propagateFrom(x, y) {
		e.preFailed = true
	}
}

// Grid returns a read-only view of the cells. After a failed Run, callers
// MUST treat the grid as garbage (§7): it holds whatever partially-collapsed
// state existed at the moment the search gave up.
func (e *Engine) Grid() *Grid { return e.grid }

// GlobalCounts returns a read-only snapshot of the per-module collapse
// counts (§6).
func (e *Engine) GlobalCounts() map[ModuleId]int { return e.counters.asMap() }

// Err returns the detailed failure from the most recent Run: nil on
// success, ErrUnsatisfiable, or *OutOfBudgetError.
func (e *Engine) Err() error { return e.lastErr }

// Run drives the solver loop to completion (§4.6). It returns true iff
// every cell collapsed without exhausting the backtracking search space.
// When relaxation is true and the top-level search would otherwise fail
// with ErrUnsatisfiable, Run retries exactly once with every global cap
// lifted to unlimited (§4.6, "a single, at-most-once relaxation"); an
// *OutOfBudgetError is returned without a retry.
func (e *Engine) Run(relaxation bool) bool {
	e.backtrackCount = 0
	if e.preFailed {
		e.lastErr = ErrUnsatisfiable
		return false
	}
	e.ensureSeeded()
	e.captureInitialState()

	start := time.Now()
	ok, err := e.runLoop()
	if !ok && err == ErrUnsatisfiable && relaxation && !e.relaxationUsed {
		e.relaxationUsed = true
		log.Info().Msg("wfc: exhausted backtracking, retrying once with global caps lifted")
		e.counters.liftAll()
		e.restoreInitialState()
		e.stack.frames = e.stack.frames[:0]
		ok, err = e.runLoop()
	}
	e.lastErr = err
	if e.recorder != nil {
		e.recorder.ObserveRunDuration(time.Since(start), ok)
	}
	return ok
}

// captureInitialState records the post-removePossibility, pre-collapse grid
// state once, so a relaxation retry can rewind to it without re-running the
// caller's pre-run hooks.
func (e *Engine) captureInitialState() {
	if e.initialCaptured {
		return
	}
	e.initialPossibilities = make([]*possibilitySet, len(e.grid.cells))
	for i := range e.grid.cells {
		e.initialPossibilities[i] = e.grid.cells[i].possible.clone()
	}
	e.initialCaptured = true
}

func (e *Engine) restoreInitialState() {
	for i := range e.grid.cells {
		cell := &e.grid.cells[i]
		cell.possible.restoreFrom(e.initialPossibilities[i])
		cell.isCollapsed = false
		cell.chosenIndex = -1
	}
}

func (e *Engine) recordBacktrack() {
	e.backtrackCount++
	if e.recorder != nil {
		e.recorder.ObserveBacktrack()
	}
}

// BacktrackCount returns the number of backtracks performed by the most
// recent Run, for callers (e.g. pkg/history) that want it alongside the
// outcome.
func (e *Engine) BacktrackCount() int { return e.backtrackCount }

// runLoop is the literal translation of §4.6's pseudocode.
func (e *Engine) runLoop() (bool, error) {
	for {
		if e.grid.AllCollapsed() {
			return true, nil
		}

		target, found, contradiction := e.coll.selectTarget(e.rng, e.heuristicsOn)
		if !found {
			if contradiction {
				log.Debug().Msg("wfc: contradiction found, backtracking")
				e.recordBacktrack()
				if !e.stack.backtrack(e.prop) {
					return false, ErrUnsatisfiable
				}
				continue
			}
			// Defensive: selectTarget found nothing to do and no
			// contradiction exists, which AllCollapsed() above should
			// already have caught.
			return true, nil
		}

		idx, ok := e.coll.chooseModule(target, e.counters, e.rng)
		if !ok {
			log.Debug().Int("x", target.X).Int("y", target.Y).Msg("wfc: global cap exhausted, backtracking")
			e.recordBacktrack()
			if !e.stack.backtrack(e.prop) {
				return false, ErrUnsatisfiable
			}
			continue
		}

		if err := e.stack.push(target.X, target.Y, idx); err != nil {
			return false, err
		}
		e.coll.commitCollapse(target, idx, e.counters)

		propagated := e.prop.propagateFrom(target.X, target.Y)
		if e.recorder != nil {
			e.recorder.ObservePropagationDepth(e.prop.Visited())
		}
		if !propagated {
			log.Debug().Int("x", target.X).Int("y", target.Y).Msg("wfc: propagation contradiction, backtracking")
			e.recordBacktrack()
			if !e.stack.backtrack(e.prop) {
				return false, ErrUnsatisfiable
			}
			continue
		}
	}
}
