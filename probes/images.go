package probes

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/pageaudit/models"
	"golang.org/x/sync/errgroup"
)

// noAltText is the placeholder recorded for images without an alt attribute.
const noAltText = "(no alt text)"

// sizeFetcher is what the images probe needs from the outbound fetch client.
type sizeFetcher interface {
	Size(ctx context.Context, url string) (int64, error)
}

// Images lists the page's image elements with their fetched byte size and
// flags the ones over the weight threshold. An image that cannot be fetched
// is still listed, with the sentinel size -1 and the error kept.
type Images struct {
	URL         string
	Source      pageSource
	Fetcher     sizeFetcher
	Threshold   int64
	Concurrency int
}

func (p *Images) Name() string { return "images" }

func (p *Images) Run(ctx context.Context) (any, error) {
	doc, err := loadDocument(ctx, p.Source)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(p.URL)
	if err != nil {
		return nil, err
	}

	infos := collectImages(doc, base)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())
	for i := range infos {
		i := i
		g.Go(func() error {
			size, err := p.Fetcher.Size(gctx, infos[i].Src)
			if err != nil {
				infos[i].Size = -1
				infos[i].Error = err.Error()
				return nil
			}
			infos[i].Size = size
			return nil
		})
	}
	_ = g.Wait()

	payload := &models.ImagesPayload{
		Images:    infos,
		Oversized: []models.ImageInfo{},
	}
	for _, img := range infos {
		if img.Size > p.Threshold {
			payload.Oversized = append(payload.Oversized, img)
		}
	}
	return payload, nil
}

func (p *Images) concurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return 4
}

// collectImages returns the page's image elements with absolute source
// URLs, deduplicated by source so the same file is not fetched twice.
func collectImages(doc *goquery.Document, base *url.URL) []models.ImageInfo {
	seen := make(map[string]struct{})
	infos := []models.ImageInfo{}

	doc.FindMatcher(selImages).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		resolved, err := base.Parse(src)
		if err != nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}
		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		alt, exists := s.Attr("alt")
		alt = strings.TrimSpace(alt)
		if !exists || alt == "" {
			alt = noAltText
		}
		infos = append(infos, models.ImageInfo{Src: abs, Alt: alt})
	})

	return infos
}
