package models

import "time"

// ProbeStatus classifies the outcome of one probe execution.
type ProbeStatus string

const (
	// StatusOK means the probe completed and its payload is trustworthy.
	StatusOK ProbeStatus = "ok"

	// StatusPartial means the probe hit an error but still produced a
	// usable (incomplete) payload, e.g. a capture cut short by a timeout.
	StatusPartial ProbeStatus = "partial"

	// StatusFailed means the probe produced no payload at all.
	StatusFailed ProbeStatus = "failed"
)

// ProbeResult is the outcome of exactly one probe execution.
// Payload is present only for ok/partial results; Error is set whenever
// the status is not ok.
type ProbeResult struct {
	Name    string      `json:"name"`
	Status  ProbeStatus `json:"status"`
	Payload any         `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Report is the aggregate of one audit run. Results keeps probe execution
// order; probe names are unique within a run. The struct is treated as
// immutable once aggregation completes.
//
// A slice is used instead of a map because Go maps do not preserve
// insertion order, and the JSON artifact must list probes in the order
// they ran.
type Report struct {
	URL         string        `json:"url"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Results     []ProbeResult `json:"results"`
	Summary     Summary       `json:"summary"`
}

// Result returns the result for the named probe, if present.
func (r *Report) Result(name string) (ProbeResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return ProbeResult{}, false
}

// CategoryStatus is the derived status label for a report category.
type CategoryStatus string

const (
	StatusGood             CategoryStatus = "good"
	StatusNeedsImprovement CategoryStatus = "needs-improvement"
	StatusUnknown          CategoryStatus = "unknown"
)

// CategorySummary is the derived summary for one report category.
// Score is nil for categories that carry no numeric score (security
// headers) or whose probe failed.
type CategorySummary struct {
	Score          *int           `json:"score"`
	Status         CategoryStatus `json:"status"`
	Recommendation string         `json:"recommendation"`
}

// Summary holds every derived field of a Report.
type Summary struct {
	Performance     CategorySummary `json:"performance"`
	SEO             CategorySummary `json:"seo"`
	Accessibility   CategorySummary `json:"accessibility"`
	SecurityHeaders CategorySummary `json:"securityHeaders"`
	Counts          ProblemCounts   `json:"counts"`
}

// ProblemCounts are the headline figures of the printable report.
// The carbon figures are nil when the carbon probe failed.
type ProblemCounts struct {
	BrokenLinks          int      `json:"brokenLinks"`
	OversizedImages      int      `json:"oversizedImages"`
	OversizedAssets      int      `json:"oversizedAssets"`
	ThirdPartyResources  int      `json:"thirdPartyResources"`
	CarbonGridGrams      *float64 `json:"carbonGridGrams"`
	CarbonRenewableGrams *float64 `json:"carbonRenewableGrams"`
}
