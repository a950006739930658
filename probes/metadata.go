package probes

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/pageaudit/models"
)

// Metadata reads the page's basic SEO metadata from the settled page.
// Each field falls back to the explicit not-found marker on its own, so one
// missing tag never fails the probe.
type Metadata struct {
	Source pageSource
}

func (p *Metadata) Name() string { return "metadata" }

func (p *Metadata) Run(ctx context.Context) (any, error) {
	doc, err := loadDocument(ctx, p.Source)
	if err != nil {
		return nil, err
	}

	return &models.MetadataPayload{
		Title:         textOr(doc.FindMatcher(selTitle).First().Text()),
		Description:   metaContent(doc, selDescription),
		OGTitle:       metaContent(doc, selOGTitle),
		OGDescription: metaContent(doc, selOGDescription),
	}, nil
}

func metaContent(doc *goquery.Document, sel goquery.Matcher) string {
	content, exists := doc.FindMatcher(sel).First().Attr("content")
	if !exists {
		return models.NotFound
	}
	return textOr(content)
}

func textOr(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NotFound
	}
	return s
}
