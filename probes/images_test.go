package probes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/use-agent/pageaudit/models"
)

// stubSizer returns canned byte sizes keyed by the path suffix of the URL.
type stubSizer struct {
	sizes map[string]int64
	errs  map[string]error
}

func (s *stubSizer) Size(_ context.Context, u string) (int64, error) {
	for suffix, err := range s.errs {
		if strings.HasSuffix(u, suffix) {
			return 0, err
		}
	}
	for suffix, size := range s.sizes {
		if strings.HasSuffix(u, suffix) {
			return size, nil
		}
	}
	return 0, errors.New("no stubbed size for " + u)
}

func TestImages_FlagsOnlyImagesOverThreshold(t *testing.T) {
	page := staticPage(`<html><body>
		<img src="/hero.jpg" alt="Hero">
		<img src="/icon.png" alt="Icon">
		<img src="/exact.png" alt="Exact">
	</body></html>`)

	probe := &Images{
		URL:    "https://example.com/",
		Source: page,
		Fetcher: &stubSizer{sizes: map[string]int64{
			"/hero.jpg":  200_000,
			"/icon.png":  1_024,
			"/exact.png": 102_400,
		}},
		Threshold: 102_400,
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.ImagesPayload)
	if len(got.Images) != 3 {
		t.Fatalf("expected all 3 images listed, got %d", len(got.Images))
	}
	if len(got.Oversized) != 1 {
		t.Fatalf("only the image strictly over the threshold should be flagged, got %v", got.Oversized)
	}
	if got.Oversized[0].Src != "https://example.com/hero.jpg" {
		t.Errorf("unexpected oversized image %q", got.Oversized[0].Src)
	}
}

func TestImages_UnfetchableImageKeepsSentinelSize(t *testing.T) {
	page := staticPage(`<img src="/broken.png" alt="x">`)

	probe := &Images{
		URL:       "https://example.com/",
		Source:    page,
		Fetcher:   &stubSizer{errs: map[string]error{"/broken.png": errors.New("status 403")}},
		Threshold: 100,
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.ImagesPayload)
	if len(got.Images) != 1 {
		t.Fatalf("unfetchable image must still be listed, got %d entries", len(got.Images))
	}
	img := got.Images[0]
	if img.Size != -1 {
		t.Errorf("expected sentinel size -1, got %d", img.Size)
	}
	if img.Error == "" {
		t.Error("fetch error should be recorded on the entry")
	}
	if len(got.Oversized) != 0 {
		t.Errorf("sentinel-sized image must not count as oversized: %v", got.Oversized)
	}
}

func TestImages_DedupsAndSkipsDataURIs(t *testing.T) {
	page := staticPage(`<body>
		<img src="/logo.png" alt="Logo">
		<img src="/logo.png" alt="Logo again">
		<img src="data:image/png;base64,AAAA">
		<img src="">
	</body>`)

	probe := &Images{
		URL:       "https://example.com/",
		Source:    page,
		Fetcher:   &stubSizer{sizes: map[string]int64{"/logo.png": 10}},
		Threshold: 100,
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := payload.(*models.ImagesPayload)
	if len(got.Images) != 1 {
		t.Fatalf("expected one deduplicated image, got %v", got.Images)
	}
}

func TestImages_MissingAltGetsPlaceholder(t *testing.T) {
	page := staticPage(`<img src="/a.png"><img src="/b.png" alt="  ">`)

	probe := &Images{
		URL:       "https://example.com/",
		Source:    page,
		Fetcher:   &stubSizer{sizes: map[string]int64{".png": 5}},
		Threshold: 100,
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, img := range payload.(*models.ImagesPayload).Images {
		if img.Alt != noAltText {
			t.Errorf("%s: expected %q, got %q", img.Src, noAltText, img.Alt)
		}
	}
}
