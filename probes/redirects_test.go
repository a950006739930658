package probes

import (
	"context"
	"errors"
	"testing"

	"github.com/use-agent/pageaudit/models"
	"github.com/use-agent/pageaudit/session"
)

func TestRedirects_ReportsFirstHop(t *testing.T) {
	probe := &Redirects{
		URL: "http://example.com",
		Fetcher: stubDocFetcher{resp: &session.DocumentResponse{
			Status: 200,
			Redirect: &session.RedirectHop{
				Status:   301,
				Location: "https://example.com/",
			},
		}},
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.RedirectsPayload)
	if !got.Redirected {
		t.Fatal("expected a redirect to be reported")
	}
	if got.OriginalURL != "http://example.com" {
		t.Errorf("unexpected original URL %q", got.OriginalURL)
	}
	if got.RedirectedURL != "https://example.com/" {
		t.Errorf("unexpected redirect target %q", got.RedirectedURL)
	}
	if got.Status != 301 {
		t.Errorf("expected status 301, got %d", got.Status)
	}
}

func TestRedirects_DirectResponseReportsNoRedirect(t *testing.T) {
	probe := &Redirects{
		URL:     "https://example.com",
		Fetcher: stubDocFetcher{resp: &session.DocumentResponse{Status: 200}},
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.(*models.RedirectsPayload).Redirected {
		t.Error("a 200 response must not be reported as a redirect")
	}
}

func TestRedirects_NavigationErrorFailsProbe(t *testing.T) {
	probe := &Redirects{
		URL:     "https://example.com",
		Fetcher: stubDocFetcher{err: errors.New("net::ERR_NAME_NOT_RESOLVED")},
	}

	payload, err := probe.Run(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if payload != nil {
		t.Errorf("failed probe must return no payload, got %v", payload)
	}
}
