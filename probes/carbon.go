package probes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/use-agent/pageaudit/models"
)

// Carbon fetches the page's carbon-impact estimate from the external
// provider. It is independent of the browser session: the provider is keyed
// by URL alone. Provider, network and parse errors all surface as a failed
// probe.
type Carbon struct {
	URL      string
	Endpoint string

	// Client overrides http.DefaultClient, mainly for tests.
	Client *http.Client
}

func (p *Carbon) Name() string { return "carbon" }

func (p *Carbon) Run(ctx context.Context) (any, error) {
	endpoint := strings.TrimRight(p.Endpoint, "/") + "/site?url=" + url.QueryEscape(p.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carbon provider returned HTTP %d", resp.StatusCode)
	}

	var payload models.CarbonPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, models.NewAuditError(models.ErrCodeProbe, "decoding carbon response", err)
	}
	return &payload, nil
}
