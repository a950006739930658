package probes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/pageaudit/models"
)

// Runner executes an ordered list of probes strictly one after another
// against the shared session, producing exactly one ProbeResult per probe.
//
// Probes run sequentially on purpose: the browser session is the one shared
// mutable resource, and two probes racing on the page's navigation state
// would corrupt each other's results.
type Runner struct {
	probes  []Probe
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner creates a Runner. timeout bounds each probe execution
// individually; exceeding it fails that probe only, never the run.
func NewRunner(probes []Probe, timeout time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{probes: probes, timeout: timeout, logger: logger}
}

// Run executes every configured probe in order and returns their results in
// that same order. A probe failure (error, timeout, or panic) converts to a
// failed ProbeResult and execution continues with the next probe.
func (r *Runner) Run(ctx context.Context) []models.ProbeResult {
	results := make([]models.ProbeResult, 0, len(r.probes))
	for _, p := range r.probes {
		results = append(results, r.runOne(ctx, p))
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, p Probe) (result models.ProbeResult) {
	name := p.Name()
	start := time.Now()

	// Rod's Must* helpers and broken probes panic; isolation has to hold
	// either way.
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("probe panicked", "probe", name, "panic", rec)
			result = models.ProbeResult{
				Name:   name,
				Status: models.StatusFailed,
				Error:  fmt.Sprintf("panic: %v", rec),
			}
		}
	}()

	probeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := p.Run(probeCtx)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		r.logger.Info("probe completed", "probe", name, "elapsed", elapsed)
		return models.ProbeResult{Name: name, Status: models.StatusOK, Payload: payload}
	case payload != nil:
		r.logger.Warn("probe returned a partial result",
			"probe", name, "elapsed", elapsed, "error", err)
		return models.ProbeResult{
			Name:    name,
			Status:  models.StatusPartial,
			Payload: payload,
			Error:   err.Error(),
		}
	default:
		r.logger.Warn("probe failed", "probe", name, "elapsed", elapsed, "error", err)
		return models.ProbeResult{Name: name, Status: models.StatusFailed, Error: err.Error()}
	}
}
