package probes

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/use-agent/pageaudit/models"
)

// ThirdParty captures the resources loaded during a page reload and lists
// the ones served from outside the audited site's host. The host to compare
// against always comes from the run's target URL, never from a constant.
type ThirdParty struct {
	URL      string
	Capturer reloadCapturer
}

func (p *ThirdParty) Name() string { return "third-party" }

func (p *ThirdParty) Run(ctx context.Context) (any, error) {
	base, err := url.Parse(p.URL)
	if err != nil {
		return nil, err
	}
	own := base.Hostname()
	if own == "" {
		return nil, fmt.Errorf("target URL %q has no host", p.URL)
	}

	captured, capErr := p.Capturer.CaptureReload(ctx)

	seen := make(map[string]struct{})
	payload := &models.ThirdPartyPayload{
		Host:      own,
		Resources: []string{},
	}
	for _, r := range captured {
		u, err := url.Parse(r.URL)
		if err != nil || u.Hostname() == "" {
			continue
		}
		if sameSite(u.Hostname(), own) {
			continue
		}
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		payload.Resources = append(payload.Resources, r.URL)
	}

	if capErr != nil {
		return payload, capErr
	}
	return payload, nil
}

// sameSite reports whether host belongs to the audited site. Plain suffix
// matching; false positives on shared parent domains are an accepted
// approximation.
func sameSite(host, own string) bool {
	host = strings.ToLower(host)
	own = strings.ToLower(own)
	return host == own ||
		strings.HasSuffix(host, "."+own) ||
		strings.HasSuffix(own, "."+host)
}
