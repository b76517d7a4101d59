package wfc

import "time"

// Recorder receives diagnostic observations from a Run, without pkg/wfc
// depending on any particular metrics backend. pkg/telemetry's Metrics type
// implements this.
type Recorder interface {
	ObserveBacktrack()
	ObservePropagationDepth(depth int)
	ObserveRunDuration(d time.Duration, accepted bool)
}

// SetRecorder attaches r so Run reports backtracks, propagation depth, and
// wall-clock duration to it. A nil Recorder (the default) disables
// reporting.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}
