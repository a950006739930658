package probes

import (
	"context"
	"math"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/pageaudit/models"
)

// sessionExpiry is the literal recorded for cookies without an expiry.
const sessionExpiry = "Session"

// cookieSource is the session slice exposing the cookie jar.
type cookieSource interface {
	Cookies(ctx context.Context) ([]*proto.NetworkCookie, error)
}

// Cookies lists the session's cookies. The browser reports session cookies
// with expiry -1; those are normalized to the literal "Session", every
// other expiry becomes an absolute RFC 3339 timestamp.
type Cookies struct {
	Source cookieSource
}

func (p *Cookies) Name() string { return "cookies" }

func (p *Cookies) Run(ctx context.Context) (any, error) {
	raw, err := p.Source.Cookies(ctx)
	if err != nil {
		return nil, err
	}

	cookies := []models.Cookie{}
	for _, c := range raw {
		cookies = append(cookies, models.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			Expires:  formatExpiry(float64(c.Expires)),
		})
	}
	return &models.CookiesPayload{Cookies: cookies}, nil
}

// formatExpiry converts a CDP cookie expiry (seconds since epoch, -1 for
// session cookies) into its report representation.
func formatExpiry(epoch float64) string {
	if epoch < 0 {
		return sessionExpiry
	}
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(time.RFC3339)
}
