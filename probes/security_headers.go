package probes

import (
	"context"
	"strings"

	"github.com/use-agent/pageaudit/models"
	"github.com/use-agent/pageaudit/session"
)

// documentFetcher is the single-navigation slice of the session the
// navigation-based probes need.
type documentFetcher interface {
	DocumentResponse(ctx context.Context, url string) (*session.DocumentResponse, error)
}

// requiredSecurityHeaders are the headers whose absence the probe reports.
var requiredSecurityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
}

// SecurityHeaders navigates to the target URL and reports which of the key
// security headers the main document response is missing.
//
// When the headers cannot be inspected at all (no response, navigation
// error), the payload carries a single explanatory note instead of failing
// the probe: "we could not check" is itself a finding.
type SecurityHeaders struct {
	URL     string
	Fetcher documentFetcher
}

func (p *SecurityHeaders) Name() string { return "security-headers" }

func (p *SecurityHeaders) Run(ctx context.Context) (any, error) {
	resp, err := p.Fetcher.DocumentResponse(ctx, p.URL)
	if err != nil {
		return &models.SecurityHeadersPayload{
			Missing: []string{},
			Note:    "could not inspect response headers: " + err.Error(),
		}, nil
	}
	if resp.Headers == nil {
		return &models.SecurityHeadersPayload{
			Missing: []string{},
			Note:    "response carried no headers object",
		}, nil
	}

	missing := []string{}
	for _, h := range requiredSecurityHeaders {
		if _, present := resp.Headers[strings.ToLower(h)]; !present {
			missing = append(missing, h)
		}
	}
	return &models.SecurityHeadersPayload{Missing: missing}, nil
}

