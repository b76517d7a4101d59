package main

import (
	"github.com/gitrdm/wfcgen/pkg/telemetry"
	"github.com/gitrdm/wfcgen/pkg/wfc"
)

// runOnce drives either a single Engine.Run or, when validators were
// requested, the outer RejectionSampler, wiring metrics into whichever
// Engine actually runs. It returns the grid to render, whether the attempt
// was accepted, and the accepted engine's backtrack count for history.
func runOnce(lp *loadedProject, validators []wfc.Validator, maxTries int, relaxation, parallel bool, metrics *telemetry.Metrics) (*wfc.Grid, bool, int, error) {
	newEngine := func() *wfc.Engine {
		e := lp.newEngine()
		if metrics != nil {
			e.SetRecorder(metrics)
		}
		return e
	}

	if len(validators) == 0 {
		e := newEngine()
		ok := e.Run(relaxation)
		return e.Grid(), ok, e.BacktrackCount(), e.Err()
	}

	sampler := wfc.NewRejectionSampler(newEngine, maxTries, relaxation, validators...)
	var e *wfc.Engine
	var ok bool
	if parallel {
		e, ok = sampler.RunParallel(0)
	} else {
		e, ok = sampler.RunSequential()
	}
	if !ok {
		return nil, false, 0, wfc.ErrUnsatisfiable
	}
	return e.Grid(), true, e.BacktrackCount(), nil
}
