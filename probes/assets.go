package probes

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/use-agent/pageaudit/models"
	"github.com/use-agent/pageaudit/session"
)

// reloadCapturer is the session slice exposing the register-then-reload
// capture unit the network probes depend on.
type reloadCapturer interface {
	CaptureReload(ctx context.Context) ([]session.CapturedResponse, error)
}

// Assets captures the CSS/JS resources loaded during a page reload and
// flags the ones over the weight threshold. When the reload is cut short,
// the assets captured so far are still reported, marked partial.
type Assets struct {
	Capturer  reloadCapturer
	Threshold int64
}

func (p *Assets) Name() string { return "assets" }

func (p *Assets) Run(ctx context.Context) (any, error) {
	captured, err := p.Capturer.CaptureReload(ctx)

	payload := &models.AssetsPayload{
		Assets:    []models.Asset{},
		Oversized: []models.Asset{},
	}
	for _, r := range captured {
		if !isCSSOrJS(r) {
			continue
		}
		asset := models.Asset{URL: r.URL, Size: r.Size}
		payload.Assets = append(payload.Assets, asset)
		if r.Size > p.Threshold {
			payload.Oversized = append(payload.Oversized, asset)
		}
	}

	if err != nil {
		payload.Error = err.Error()
		return payload, err
	}
	return payload, nil
}

func isCSSOrJS(r session.CapturedResponse) bool {
	switch r.Type {
	case "Stylesheet", "Script":
		return true
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".css", ".js":
		return true
	}
	return false
}
