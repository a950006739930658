package probes

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// pageSource is the slice of the session the DOM-query probes need: the
// rendered HTML of the already-settled page.
type pageSource interface {
	HTML(ctx context.Context) (string, error)
}

// Selectors are parsed once and shared by the DOM-query probes.
var (
	selAnchors       = cascadia.MustCompile("a[href]")
	selImages        = cascadia.MustCompile("img[src]")
	selTitle         = cascadia.MustCompile("title")
	selDescription   = cascadia.MustCompile(`meta[name="description"]`)
	selOGTitle       = cascadia.MustCompile(`meta[property="og:title"]`)
	selOGDescription = cascadia.MustCompile(`meta[property="og:description"]`)
)

// loadDocument reads the settled page's HTML and parses it for querying.
func loadDocument(ctx context.Context, src pageSource) (*goquery.Document, error) {
	raw, err := src.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(raw))
}

// collectHrefs returns the page's fetchable link targets: deduplicated,
// resolved against base, with non-http(s) schemes (mailto:, tel:,
// javascript:) and bare fragments excluded before any fetch happens.
func collectHrefs(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.FindMatcher(selAnchors).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}
