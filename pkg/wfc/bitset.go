package wfc

import "math/bits"

// possibilitySet is a compact, mutable bitset over a catalog's dense module
// indices. Values are 0-indexed in the range [0, size). Each index is a
// single bit in a uint64 word array, giving O(1) membership testing and
// O(words) set operations.
//
// Unlike the teacher's BitSetDomain (pkg/minikanren/domain.go), this type is
// mutated in place rather than returning new instances on every change: the
// engine's hot path removes possibilities from thousands of cells per run,
// and a snapshot is a deliberate, explicit deep copy (see snapshot.go) rather
// than relying on structural sharing. Index addressing over the catalog's
// module slice replaces the BitSetDomain's maxValue-as-integer-range.
type possibilitySet struct {
	size  int
	words []uint64
}

func newFullPossibilitySet(size int) *possibilitySet {
	p := &possibilitySet{size: size, words: make([]uint64, wordCount(size))}
	for i := 0; i < size; i++ {
		p.set(i)
	}
	return p
}

func newEmptyPossibilitySet(size int) *possibilitySet {
	return &possibilitySet{size: size, words: make([]uint64, wordCount(size))}
}

func wordCount(size int) int {
	return (size + 63) / 64
}

func (p *possibilitySet) set(idx int) {
	p.words[idx/64] |= 1 << uint(idx%64)
}

func (p *possibilitySet) clear(idx int) {
	p.words[idx/64] &^= 1 << uint(idx%64)
}

// has reports whether idx is currently a possibility.
func (p *possibilitySet) has(idx int) bool {
	return p.words[idx/64]&(1<<uint(idx%64)) != 0
}

// remove drops idx from the set. Returns true if it was present.
func (p *possibilitySet) remove(idx int) bool {
	if !p.has(idx) {
		return false
	}
	p.clear(idx)
	return true
}

// count returns the number of remaining possibilities (the cell's entropy).
func (p *possibilitySet) count() int {
	n := 0
	for _, w := range p.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// singleton returns the one remaining index and true, iff count()==1.
func (p *possibilitySet) singleton() (int, bool) {
	found := -1
	for w := 0; w < len(p.words); w++ {
		word := p.words[w]
		for word != 0 {
			pos := w*64 + bits.TrailingZeros64(word)
			if found != -1 {
				return -1, false
			}
			found = pos
			word &= word - 1
		}
	}
	return found, found != -1
}

// iterate calls f for every index currently in the set, in ascending order.
func (p *possibilitySet) iterate(f func(idx int)) {
	for w := 0; w < len(p.words); w++ {
		word := p.words[w]
		for word != 0 {
			f(w*64 + bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
}

// clone returns a deep, independent copy. Used by the SnapshotStack to take
// a full pre-collapse copy of every cell's possibility set (§3, Snapshot).
func (p *possibilitySet) clone() *possibilitySet {
	words := make([]uint64, len(p.words))
	copy(words, p.words)
	return &possibilitySet{size: p.size, words: words}
}

// restoreFrom overwrites p's contents with other's, without reallocating.
func (p *possibilitySet) restoreFrom(other *possibilitySet) {
	if len(p.words) != len(other.words) {
		p.words = make([]uint64, len(other.words))
	}
	copy(p.words, other.words)
	p.size = other.size
}

// toSlice materializes the set as a sorted slice of indices.
func (p *possibilitySet) toSlice() []int {
	out := make([]int, 0, p.count())
	p.iterate(func(idx int) { out = append(out, idx) })
	return out
}
