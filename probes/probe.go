// Package probes contains the inspection units that run against one browser
// session, and the runner that executes them in order while keeping each
// probe's failure isolated from the rest of the run.
package probes

import "context"

// Probe is one self-contained inspection unit. A probe reads some aspect of
// the loaded page, drives a navigation of its own, or makes an external
// call, and returns a typed payload.
//
// Outcome mapping (done by the Runner):
//   - payload, nil   -> ok
//   - payload, err   -> partial (payload is incomplete but usable)
//   - nil, err       -> failed
type Probe interface {
	// Name returns the probe's unique key within a run.
	Name() string

	// Run executes the probe. The context carries the per-probe deadline.
	Run(ctx context.Context) (any, error)
}
