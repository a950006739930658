package probes

import (
	"context"
	"net/url"

	"github.com/use-agent/pageaudit/models"
	"golang.org/x/sync/errgroup"
)

// statusFetcher is what the broken-links probe needs from the outbound
// fetch client.
type statusFetcher interface {
	Status(ctx context.Context, url string) (int, error)
}

// BrokenLinks collects the page's anchors and checks each fetchable target.
// Links are recorded only when the fetch did not succeed: HTTP >= 400 keeps
// the status code, a transport error keeps the error message. mailto:/tel:
// and other non-http(s) targets are excluded before any fetch.
type BrokenLinks struct {
	URL         string
	Source      pageSource
	Fetcher     statusFetcher
	Concurrency int
}

func (p *BrokenLinks) Name() string { return "broken-links" }

func (p *BrokenLinks) Run(ctx context.Context) (any, error) {
	doc, err := loadDocument(ctx, p.Source)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(p.URL)
	if err != nil {
		return nil, err
	}

	links := collectHrefs(doc, base)
	payload := &models.BrokenLinksPayload{
		Checked: len(links),
		Broken:  []models.BrokenLink{},
	}

	// The checks go out over plain HTTP and never touch the browser
	// session, so a bounded amount of concurrency is safe here.
	found := make([]*models.BrokenLink, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			status, err := p.Fetcher.Status(gctx, link)
			switch {
			case err != nil:
				found[i] = &models.BrokenLink{Link: link, Error: err.Error()}
			case status >= 400:
				found[i] = &models.BrokenLink{Link: link, Status: status}
			}
			return nil
		})
	}
	_ = g.Wait() // workers record outcomes instead of returning errors

	for _, b := range found {
		if b != nil {
			payload.Broken = append(payload.Broken, *b)
		}
	}
	return payload, nil
}

func (p *BrokenLinks) concurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return 4
}
