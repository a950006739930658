// Package report turns probe results into the run's aggregate Report and
// renders it as a JSON document and a printable HTML summary.
package report

import (
	"strings"
	"time"

	"github.com/use-agent/pageaudit/models"
)

// scoreGoodAbove is the derived-status threshold: strictly greater than
// this is "good", anything else is "needs-improvement".
const scoreGoodAbove = 70

// recommendationNA is the recommendation shown when a category could not
// be scored at all.
const recommendationNA = "N/A"

// recommendations is the fixed set of per-category recommendation strings,
// keyed by derived status.
var recommendations = map[string]map[models.CategoryStatus]string{
	"performance": {
		models.StatusGood:             "Performance looks healthy; keep assets lean to stay there.",
		models.StatusNeedsImprovement: "Reduce page weight and defer non-critical scripts to speed up loading.",
	},
	"seo": {
		models.StatusGood:             "SEO basics are in place.",
		models.StatusNeedsImprovement: "Fill in missing metadata and fix crawl blockers to improve SEO.",
	},
	"accessibility": {
		models.StatusGood:             "Accessibility checks pass; keep alt texts and labels current.",
		models.StatusNeedsImprovement: "Add alt texts, labels and sufficient contrast to improve accessibility.",
	},
}

// Build merges the ordered probe results into one Report with every derived
// field computed. It is pure and total: an all-failed result set still
// produces a complete Report with each derived field at its unknown
// variant.
func Build(targetURL string, results []models.ProbeResult, generatedAt time.Time) *models.Report {
	r := &models.Report{
		URL:         targetURL,
		GeneratedAt: generatedAt,
		Results:     results,
	}

	scores := payloadOf[models.PerformanceScores](results, "performance")
	r.Summary.Performance = scoreSummary("performance", scores)
	r.Summary.SEO = scoreSummary("seo", scores)
	r.Summary.Accessibility = scoreSummary("accessibility", scores)
	r.Summary.SecurityHeaders = securitySummary(
		payloadOf[models.SecurityHeadersPayload](results, "security-headers"),
	)
	r.Summary.Counts = counts(results)

	return r
}

func scoreSummary(category string, scores *models.PerformanceScores) models.CategorySummary {
	var score *int
	if scores != nil {
		switch category {
		case "performance":
			score = scores.Performance
		case "seo":
			score = scores.SEO
		case "accessibility":
			score = scores.Accessibility
		}
	}
	if score == nil {
		return models.CategorySummary{
			Status:         models.StatusUnknown,
			Recommendation: recommendationNA,
		}
	}

	status := models.StatusNeedsImprovement
	if *score > scoreGoodAbove {
		status = models.StatusGood
	}
	return models.CategorySummary{
		Score:          score,
		Status:         status,
		Recommendation: recommendations[category][status],
	}
}

func securitySummary(p *models.SecurityHeadersPayload) models.CategorySummary {
	if p == nil || p.Note != "" {
		return models.CategorySummary{
			Status:         models.StatusUnknown,
			Recommendation: recommendationNA,
		}
	}
	if len(p.Missing) == 0 {
		return models.CategorySummary{
			Status:         models.StatusGood,
			Recommendation: "All key security headers are present.",
		}
	}
	return models.CategorySummary{
		Status:         models.StatusNeedsImprovement,
		Recommendation: "Add the missing security headers: " + strings.Join(p.Missing, ", "),
	}
}

func counts(results []models.ProbeResult) models.ProblemCounts {
	var c models.ProblemCounts

	if links := payloadOf[models.BrokenLinksPayload](results, "broken-links"); links != nil {
		c.BrokenLinks = len(links.Broken)
	}
	if images := payloadOf[models.ImagesPayload](results, "images"); images != nil {
		c.OversizedImages = len(images.Oversized)
	}
	if assets := payloadOf[models.AssetsPayload](results, "assets"); assets != nil {
		c.OversizedAssets = len(assets.Oversized)
	}
	if tp := payloadOf[models.ThirdPartyPayload](results, "third-party"); tp != nil {
		c.ThirdPartyResources = len(tp.Resources)
	}
	if carbon := payloadOf[models.CarbonPayload](results, "carbon"); carbon != nil {
		grid := carbon.Statistics.CO2.Grid.Grams
		renewable := carbon.Statistics.CO2.Renewable.Grams
		c.CarbonGridGrams = &grid
		c.CarbonRenewableGrams = &renewable
	}

	return c
}

// payloadOf finds the named probe's payload when it is present and of the
// expected type. Failed probes carry no payload and yield nil.
func payloadOf[T any](results []models.ProbeResult, name string) *T {
	for _, r := range results {
		if r.Name != name {
			continue
		}
		if p, ok := r.Payload.(*T); ok {
			return p
		}
		return nil
	}
	return nil
}
