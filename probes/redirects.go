package probes

import (
	"context"

	"github.com/use-agent/pageaudit/models"
)

// Redirects navigates to the target URL and reports whether the first
// document response was a redirect. Only that first hop's Location value is
// reported; the chain is not followed.
type Redirects struct {
	URL     string
	Fetcher documentFetcher
}

func (p *Redirects) Name() string { return "redirects" }

func (p *Redirects) Run(ctx context.Context) (any, error) {
	resp, err := p.Fetcher.DocumentResponse(ctx, p.URL)
	if err != nil {
		return nil, err
	}

	status := resp.Status
	location := ""
	if resp.Redirect != nil {
		status = resp.Redirect.Status
		location = resp.Redirect.Location
	}

	if status >= 300 && status < 400 {
		return &models.RedirectsPayload{
			Redirected:    true,
			Status:        status,
			OriginalURL:   p.URL,
			RedirectedURL: location,
		}, nil
	}
	return &models.RedirectsPayload{Redirected: false}, nil
}
