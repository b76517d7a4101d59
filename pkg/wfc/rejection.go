package wfc

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/gitrdm/wfcgen/internal/parallel"
)

// RejectionSampler drives the outer accept/reject loop of §4.7: generate a
// fresh seeded attempt, keep it only if the Engine fully collapses AND every
// enabled Validator accepts the result, otherwise throw the grid away and
// try again up to maxTries times.
type RejectionSampler struct {
	newEngine  func() *Engine
	validators []Validator
	maxTries   int
	relaxation bool
	seedSrc    *rand.Rand
}

// NewRejectionSampler builds a sampler around newEngine, a factory that
// must return a fresh Engine configured identically on every call (grid
// size, catalog, caps, snapshot budget); each attempt seeds it with its own
// seed, replacing any seed the factory set. validators are
// looked up by the caller from NamedValidators (§6); the sampler itself
// does not interpret names.
func NewRejectionSampler(newEngine func() *Engine, maxTries int, relaxation bool, validators ...Validator) *RejectionSampler {
	if maxTries < 1 {
		maxTries = 1
	}
	return &RejectionSampler{
		newEngine:  newEngine,
		validators: validators,
		maxTries:   maxTries,
		relaxation: relaxation,
		seedSrc:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// accepts reports whether e's collapsed grid satisfies every configured
// validator. An Engine that never ran Run successfully must not reach here.
func (r *RejectionSampler) accepts(e *Engine) bool {
	grid := e.Grid()
	for _, v := range r.validators {
		if !v(grid) {
			return false
		}
	}
	return true
}

// attempt runs one seeded Engine to completion and reports whether it is
// acceptable.
func (r *RejectionSampler) attempt(seed uint32) (*Engine, bool) {
	e := r.newEngine()
	e.SetSeed(seed)
	if !e.Run(r.relaxation) {
		return e, false
	}
	if !r.accepts(e) {
		return e, false
	}
	return e, true
}

// RunSequential runs attempts one at a time, in order, stopping at the
// first accepted result (§4.7's literal "for attempt in 1..=maxTries"
// loop). It returns the accepted Engine and true, or the last attempted
// Engine (for diagnostics) and false once maxTries is exhausted.
func (r *RejectionSampler) RunSequential() (*Engine, bool) {
	var last *Engine
	for i := 0; i < r.maxTries; i++ {
		seed := uint32(r.seedSrc.Int63())
		e, ok := r.attempt(seed)
		last = e
		if ok {
			log.Info().Int("attempt", i+1).Uint32("seed", seed).Msg("wfc: rejection sampler accepted")
			return e, true
		}
		log.Debug().Int("attempt", i+1).Uint32("seed", seed).Msg("wfc: rejection sampler rejected attempt")
	}
	log.Info().Int("tries", r.maxTries).Msg("wfc: rejection sampler exhausted all attempts")
	return last, false
}

// RunParallel races up to maxTries independent attempts across workers
// goroutines, returning the first one to be accepted. Each attempt still
// runs a single-threaded Engine internally; only the outer generate/reject
// cycle is concurrent, which is why this remains within the "no
// multi-threaded solver" boundary of §9 — every accepted grid is produced
// by an ordinary sequential Run, just one of several racing candidates.
// A non-positive workers defaults to runtime.NumCPU (see
// internal/parallel.NewAttemptPool).
func (r *RejectionSampler) RunParallel(workers int) (*Engine, bool) {
	pool := parallel.NewAttemptPool(workers)
	seeds := make([]uint32, r.maxTries)
	for i := range seeds {
		seeds[i] = uint32(r.seedSrc.Int63())
	}

	engine, idx, ok := parallel.RaceFirstSuccess(context.Background(), pool, r.maxTries, func(ctx context.Context, i int) (*Engine, bool) {
		e, accepted := r.attempt(seeds[i])
		return e, accepted
	})

	submitted, succeeded, failed := pool.Stats().Snapshot()
	log.Info().
		Int("submitted", submitted).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Bool("accepted", ok).
		Msg("wfc: parallel rejection sampling finished")

	if !ok {
		return nil, false
	}
	log.Info().Int("attempt", idx+1).Uint32("seed", seeds[idx]).Msg("wfc: rejection sampler accepted (parallel)")
	return engine, true
}
