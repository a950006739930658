package probes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/use-agent/pageaudit/models"
)

// Performance asks an external Lighthouse-compatible audit service to score
// the page. The service drives the browser itself through the session's
// DevTools endpoint, so the probe sends both the target URL and the control
// URL and only reads the resulting category scores.
type Performance struct {
	URL        string
	Endpoint   string
	ControlURL string

	// Client overrides http.DefaultClient, mainly for tests.
	Client *http.Client
}

type perfRequest struct {
	URL        string `json:"url"`
	ControlURL string `json:"controlUrl"`
}

// perfResponse mirrors the audit service's category scoring: each category
// carries a 0-1 score, or null when it could not be computed.
type perfResponse struct {
	Categories map[string]struct {
		Score *float64 `json:"score"`
	} `json:"categories"`
}

func (p *Performance) Name() string { return "performance" }

func (p *Performance) Run(ctx context.Context) (any, error) {
	if p.Endpoint == "" {
		return nil, errors.New("no audit service endpoint configured")
	}

	body, err := json.Marshal(perfRequest{URL: p.URL, ControlURL: p.ControlURL})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audit service returned HTTP %d", resp.StatusCode)
	}

	var parsed perfResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, models.NewAuditError(models.ErrCodeProbe, "decoding audit response", err)
	}

	return &models.PerformanceScores{
		Performance:   parsed.scaled("performance"),
		SEO:           parsed.scaled("seo"),
		Accessibility: parsed.scaled("accessibility"),
		BestPractices: parsed.scaled("best-practices"),
		PWA:           parsed.scaled("pwa"),
	}, nil
}

func (p *Performance) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

// scaled converts a 0-1 category score to 0-100. A category absent from the
// audit report stays nil; it must not collapse to zero.
func (r perfResponse) scaled(category string) *int {
	cat, ok := r.Categories[category]
	if !ok || cat.Score == nil {
		return nil
	}
	score := int(math.Round(*cat.Score * 100))
	return &score
}
