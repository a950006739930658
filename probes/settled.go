package probes

import (
	"context"
	"sync"

	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/pageaudit/models"
)

// loadedPage is the session surface the settled-page probes read from, plus
// the navigation that loads it.
type loadedPage interface {
	Navigate(ctx context.Context, url string) error
	HTML(ctx context.Context) (string, error)
	FontFaces(ctx context.Context) ([]models.FontFace, error)
	Cookies(ctx context.Context) ([]*proto.NetworkCookie, error)
}

// SettledPage gates every page read behind one navigation that waits for the
// DOM to settle. The navigation probes only observe response events and do
// not leave the document parsed, so the first settled-page probe triggers
// the load here, exactly once per run. A failed navigation fails every probe
// reading through it; none of them may report ok against a blank or
// half-parsed page.
type SettledPage struct {
	URL  string
	Page loadedPage

	once sync.Once
	err  error
}

func (p *SettledPage) settle(ctx context.Context) error {
	p.once.Do(func() {
		p.err = p.Page.Navigate(ctx, p.URL)
	})
	return p.err
}

func (p *SettledPage) HTML(ctx context.Context) (string, error) {
	if err := p.settle(ctx); err != nil {
		return "", err
	}
	return p.Page.HTML(ctx)
}

func (p *SettledPage) FontFaces(ctx context.Context) ([]models.FontFace, error) {
	if err := p.settle(ctx); err != nil {
		return nil, err
	}
	return p.Page.FontFaces(ctx)
}

func (p *SettledPage) Cookies(ctx context.Context) ([]*proto.NetworkCookie, error) {
	if err := p.settle(ctx); err != nil {
		return nil, err
	}
	return p.Page.Cookies(ctx)
}
