package wfc

// globalCounters tracks per-module collapse counts and optional hard caps
// (§3, GlobalLimits/GlobalCounts). Counts are indexed by the catalog's dense
// module index so increment/compare on the hot path never touches a map.
type globalCounters struct {
	catalog *ModuleCatalog
	counts  []int
	limits  []int // -1 means unlimited
}

func newGlobalCounters(catalog *ModuleCatalog) *globalCounters {
	limits := make([]int, catalog.Len())
	for i := range limits {
		limits[i] = -1
	}
	return &globalCounters{
		catalog: catalog,
		counts:  make([]int, catalog.Len()),
		limits:  limits,
	}
}

// setLimit sets or overwrites id's cap (§4.6, setGlobalModuleLimit).
func (g *globalCounters) setLimit(id ModuleId, cap int) {
	idx, ok := g.catalog.IndexOf(id)
	if !ok {
		panic(&InvalidCatalogError{Reason: "setGlobalModuleLimit: unknown module id " + string(id)})
	}
	g.limits[idx] = cap
}

// underCap reports whether idx may still be collapsed into: either
// unlimited, or counts[idx] < limits[idx].
func (g *globalCounters) underCap(idx int) bool {
	l := g.limits[idx]
	return l < 0 || g.counts[idx] < l
}

func (g *globalCounters) increment(idx int) {
	g.counts[idx]++
}

// snapshot returns a deep copy for SnapshotStack.
func (g *globalCounters) snapshot() []int {
	out := make([]int, len(g.counts))
	copy(out, g.counts)
	return out
}

// restore overwrites counts from a prior snapshot.
func (g *globalCounters) restore(saved []int) {
	copy(g.counts, saved)
}

// liftAll raises every cap to unlimited, for the at-most-once relaxation
// retry of §4.6.
func (g *globalCounters) liftAll() {
	for i := range g.limits {
		g.limits[i] = -1
	}
}

// asMap renders the counts as the read-only ModuleId-keyed view exposed by
// the public API (§6, globalCounts()).
func (g *globalCounters) asMap() map[ModuleId]int {
	out := make(map[ModuleId]int, len(g.counts))
	for i, n := range g.counts {
		out[g.catalog.ModuleAt(i).Id] = n
	}
	return out
}
