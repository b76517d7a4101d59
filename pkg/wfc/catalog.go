package wfc

import "fmt"

// ModuleCatalog is the immutable table of modules built once per run (§4.1).
// It assigns each ModuleId a dense 0-based index so the rest of the engine
// can address possibilities as bitset positions (bitset.go) instead of
// hashing strings on every propagation step, and precomputes, for every
// (index, Direction) pair, the set of compatible partner indices — the
// intersection described in §3 — so IsCompatible is an O(1) lookup on the
// propagation hot path.
type ModuleCatalog struct {
	modules []Module
	indexOf map[ModuleId]int
	// compat[idx][d] is the set of partner indices that may sit on the d
	// side of modules[idx], after the symmetric double-check of §3.
	compat [][4]map[int]struct{}
	// compatBits mirrors compat as a bitset, so the propagator can compute
	// the union of several modules' compatible partners with word-wise OR
	// instead of iterating a map per source possibility.
	compatBits [][4]*possibilitySet
}

// NewModuleCatalog validates and builds a catalog from modules. It panics
// with *InvalidCatalogError on: a non-positive weight, a duplicate id, or an
// adjacency rule referencing an id absent from modules — these are
// programmer/config errors the caller is expected to have already validated
// upstream (§7).
func NewModuleCatalog(modules []Module) *ModuleCatalog {
	c := &ModuleCatalog{
		modules: make([]Module, len(modules)),
		indexOf: make(map[ModuleId]int, len(modules)),
	}
	copy(c.modules, modules)

	for i, m := range c.modules {
		if m.Weight <= 0 {
			panic(&InvalidCatalogError{Reason: fmt.Sprintf("module %q has non-positive weight %g", m.Id, m.Weight)})
		}
		if _, dup := c.indexOf[m.Id]; dup {
			panic(&InvalidCatalogError{Reason: fmt.Sprintf("duplicate module id %q", m.Id)})
		}
		c.indexOf[m.Id] = i
	}

	for _, m := range c.modules {
		for _, d := range directionOrder {
			for _, other := range m.Adjacent[d] {
				if _, ok := c.indexOf[other]; !ok {
					panic(&InvalidCatalogError{Reason: fmt.Sprintf("module %q adjacency[%s] references unknown module %q", m.Id, d, other)})
				}
			}
		}
	}

	c.precomputeCompatibility()
	return c
}

func (c *ModuleCatalog) precomputeCompatibility() {
	c.compat = make([][4]map[int]struct{}, len(c.modules))
	c.compatBits = make([][4]*possibilitySet, len(c.modules))
	adjSets := make([][4]map[ModuleId]struct{}, len(c.modules))
	for i := range c.modules {
		for _, d := range directionOrder {
			adjSets[i][d] = c.modules[i].adjacentSet(d)
		}
	}

	for i := range c.modules {
		for _, d := range directionOrder {
			opp := d.Opposite()
			partners := make(map[int]struct{})
			bits := newEmptyPossibilitySet(len(c.modules))
			for _, bID := range c.modules[i].Adjacent[d] {
				j := c.indexOf[bID]
				if _, ok := adjSets[j][opp][c.modules[i].Id]; ok {
					partners[j] = struct{}{}
					bits.set(j)
				}
			}
			c.compat[i][d] = partners
			c.compatBits[i][d] = bits
		}
	}
}

// Len returns the number of modules in the catalog.
func (c *ModuleCatalog) Len() int { return len(c.modules) }

// Get returns the module with the given id.
func (c *ModuleCatalog) Get(id ModuleId) (*Module, bool) {
	idx, ok := c.indexOf[id]
	if !ok {
		return nil, false
	}
	return &c.modules[idx], true
}

// IndexOf returns the dense catalog index for id.
func (c *ModuleCatalog) IndexOf(id ModuleId) (int, bool) {
	idx, ok := c.indexOf[id]
	return idx, ok
}

// ModuleAt returns the module at dense index idx.
func (c *ModuleCatalog) ModuleAt(idx int) *Module {
	return &c.modules[idx]
}

// All returns every module in the catalog, in catalog order.
func (c *ModuleCatalog) All() []Module {
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// IsCompatible reports whether module bIdx may sit on the d side of module
// aIdx, i.e. both aIdx's adjacency allows bIdx in direction d AND bIdx's
// adjacency allows aIdx in the opposite direction (§3, Compatibility
// predicate — symmetric double-check is mandatory).
func (c *ModuleCatalog) IsCompatible(aIdx int, d Direction, bIdx int) bool {
	_, ok := c.compat[aIdx][d][bIdx]
	return ok
}

// CompatiblePartners returns the precomputed set of indices compatible with
// aIdx in direction d. The returned map must not be mutated by callers.
func (c *ModuleCatalog) CompatiblePartners(aIdx int, d Direction) map[int]struct{} {
	return c.compat[aIdx][d]
}

// compatiblePartnersBits is the bitset twin of CompatiblePartners, used on
// the propagation hot path.
func (c *ModuleCatalog) compatiblePartnersBits(aIdx int, d Direction) *possibilitySet {
	return c.compatBits[aIdx][d]
}
