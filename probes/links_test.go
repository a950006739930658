package probes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/use-agent/pageaudit/models"
)

// staticPage is a pageSource backed by a fixed HTML string.
type staticPage string

func (s staticPage) HTML(_ context.Context) (string, error) {
	return string(s), nil
}

func newLinkServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "fine")
	})
	mux.HandleFunc("/404", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBrokenLinks_RecordsOnlyFailedFetches(t *testing.T) {
	srv := newLinkServer(t)

	page := staticPage(fmt.Sprintf(
		`<html><body>
			<a href="mailto:a@b.com">mail</a>
			<a href="tel:+123456">call</a>
			<a href="%s/404">gone</a>
			<a href="%s/ok">fine</a>
		</body></html>`, srv.URL, srv.URL))

	probe := &BrokenLinks{
		URL:     srv.URL,
		Source:  page,
		Fetcher: NewFetchClient(100, 10, 5*time.Second),
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.BrokenLinksPayload)
	if got.Checked != 2 {
		t.Errorf("mailto/tel must be excluded before fetching: expected 2 checked, got %d", got.Checked)
	}
	if len(got.Broken) != 1 {
		t.Fatalf("expected exactly one broken link, got %v", got.Broken)
	}
	if got.Broken[0].Link != srv.URL+"/404" || got.Broken[0].Status != 404 {
		t.Errorf("unexpected broken entry: %+v", got.Broken[0])
	}
}

func TestBrokenLinks_TransportErrorKeepsMessage(t *testing.T) {
	srv := newLinkServer(t)
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	dead.Close() // guaranteed connection refused

	page := staticPage(fmt.Sprintf(
		`<a href="%s/nowhere">dead</a>`, dead.URL))

	probe := &BrokenLinks{
		URL:     srv.URL,
		Source:  page,
		Fetcher: NewFetchClient(100, 10, 2*time.Second),
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.BrokenLinksPayload)
	if len(got.Broken) != 1 {
		t.Fatalf("expected one broken link, got %v", got.Broken)
	}
	if got.Broken[0].Error == "" {
		t.Error("a network error on a link must be recorded, not silently dropped")
	}
}

func TestBrokenLinks_RelativeHrefsResolveAgainstTarget(t *testing.T) {
	srv := newLinkServer(t)

	page := staticPage(`<a href="/404">rel</a><a href="./404">dup</a>`)

	probe := &BrokenLinks{
		URL:     srv.URL,
		Source:  page,
		Fetcher: NewFetchClient(100, 10, 5*time.Second),
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.BrokenLinksPayload)
	if got.Checked != 1 {
		t.Errorf("both hrefs resolve to the same URL and should be checked once, got %d", got.Checked)
	}
	if len(got.Broken) != 1 {
		t.Fatalf("relative link should resolve against the target URL and be checked, got %v", got.Broken)
	}
	if got.Broken[0].Link != srv.URL+"/404" {
		t.Errorf("unexpected resolved link %q", got.Broken[0].Link)
	}
}
