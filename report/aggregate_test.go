package report

import (
	"testing"
	"time"

	"github.com/use-agent/pageaudit/models"
)

func intp(v int) *int { return &v }

func scoredResults(perf, seo, a11y *int) []models.ProbeResult {
	return []models.ProbeResult{{
		Name:   "performance",
		Status: models.StatusOK,
		Payload: &models.PerformanceScores{
			Performance:   perf,
			SEO:           seo,
			Accessibility: a11y,
		},
	}}
}

func TestBuild_ScoreThresholdBoundary(t *testing.T) {
	cases := []struct {
		score int
		want  models.CategoryStatus
	}{
		{100, models.StatusGood},
		{71, models.StatusGood},
		{70, models.StatusNeedsImprovement},
		{0, models.StatusNeedsImprovement},
	}
	for _, tc := range cases {
		r := Build("https://example.com/", scoredResults(intp(tc.score), nil, nil), time.Now())
		got := r.Summary.Performance
		if got.Status != tc.want {
			t.Errorf("score %d: expected %q, got %q", tc.score, tc.want, got.Status)
		}
		if got.Score == nil || *got.Score != tc.score {
			t.Errorf("score %d: score must be carried into the summary", tc.score)
		}
		if got.Recommendation == "" || got.Recommendation == "N/A" {
			t.Errorf("score %d: a scored category needs a real recommendation", tc.score)
		}
	}
}

func TestBuild_CategoriesDeriveIndependently(t *testing.T) {
	r := Build("https://example.com/", scoredResults(intp(90), intp(40), nil), time.Now())

	if r.Summary.Performance.Status != models.StatusGood {
		t.Errorf("performance: %q", r.Summary.Performance.Status)
	}
	if r.Summary.SEO.Status != models.StatusNeedsImprovement {
		t.Errorf("seo: %q", r.Summary.SEO.Status)
	}
	a11y := r.Summary.Accessibility
	if a11y.Status != models.StatusUnknown || a11y.Score != nil || a11y.Recommendation != "N/A" {
		t.Errorf("missing accessibility score must stay unknown, got %+v", a11y)
	}
}

func TestBuild_AllFailedResultsStillProduceACompleteReport(t *testing.T) {
	results := []models.ProbeResult{
		{Name: "performance", Status: models.StatusFailed, Error: "timeout"},
		{Name: "security-headers", Status: models.StatusFailed, Error: "timeout"},
		{Name: "broken-links", Status: models.StatusFailed, Error: "timeout"},
		{Name: "carbon", Status: models.StatusFailed, Error: "timeout"},
	}
	r := Build("https://example.com/", results, time.Now())

	for name, cat := range map[string]models.CategorySummary{
		"performance":      r.Summary.Performance,
		"seo":              r.Summary.SEO,
		"accessibility":    r.Summary.Accessibility,
		"security-headers": r.Summary.SecurityHeaders,
	} {
		if cat.Status != models.StatusUnknown {
			t.Errorf("%s: expected unknown, got %q", name, cat.Status)
		}
		if cat.Recommendation != "N/A" {
			t.Errorf("%s: expected N/A recommendation, got %q", name, cat.Recommendation)
		}
	}
	if r.Summary.Counts.CarbonGridGrams != nil {
		t.Error("failed carbon probe must leave the gram figures nil")
	}
	if len(r.Results) != 4 {
		t.Errorf("the raw results must be carried verbatim, got %d", len(r.Results))
	}
}

func TestBuild_SecurityHeadersSummary(t *testing.T) {
	clean := []models.ProbeResult{{
		Name:    "security-headers",
		Status:  models.StatusOK,
		Payload: &models.SecurityHeadersPayload{Missing: []string{}},
	}}
	r := Build("https://example.com/", clean, time.Now())
	if r.Summary.SecurityHeaders.Status != models.StatusGood {
		t.Errorf("no missing headers should be good, got %q", r.Summary.SecurityHeaders.Status)
	}

	missing := []models.ProbeResult{{
		Name:    "security-headers",
		Status:  models.StatusOK,
		Payload: &models.SecurityHeadersPayload{Missing: []string{"Content-Security-Policy"}},
	}}
	r = Build("https://example.com/", missing, time.Now())
	sec := r.Summary.SecurityHeaders
	if sec.Status != models.StatusNeedsImprovement {
		t.Errorf("missing headers should need improvement, got %q", sec.Status)
	}
	if sec.Recommendation != "Add the missing security headers: Content-Security-Policy" {
		t.Errorf("recommendation must name the missing headers, got %q", sec.Recommendation)
	}

	uninspectable := []models.ProbeResult{{
		Name:    "security-headers",
		Status:  models.StatusOK,
		Payload: &models.SecurityHeadersPayload{Note: "could not inspect response headers"},
	}}
	r = Build("https://example.com/", uninspectable, time.Now())
	if r.Summary.SecurityHeaders.Status != models.StatusUnknown {
		t.Errorf("an uninspected response must stay unknown, got %q", r.Summary.SecurityHeaders.Status)
	}
}

func TestBuild_ProblemCounts(t *testing.T) {
	results := []models.ProbeResult{
		{Name: "broken-links", Status: models.StatusOK, Payload: &models.BrokenLinksPayload{
			Checked: 10,
			Broken:  []models.BrokenLink{{Link: "https://x/404", Status: 404}, {Link: "https://x/500", Status: 500}},
		}},
		{Name: "images", Status: models.StatusOK, Payload: &models.ImagesPayload{
			Images:    make([]models.ImageInfo, 5),
			Oversized: make([]models.ImageInfo, 1),
		}},
		{Name: "assets", Status: models.StatusOK, Payload: &models.AssetsPayload{
			Assets:    make([]models.Asset, 3),
			Oversized: make([]models.Asset, 3),
		}},
		{Name: "third-party", Status: models.StatusOK, Payload: &models.ThirdPartyPayload{
			Host:      "example.com",
			Resources: []string{"https://a/x.js", "https://b/y.js"},
		}},
		{Name: "carbon", Status: models.StatusOK, Payload: &models.CarbonPayload{
			Statistics: models.CarbonStatistics{CO2: models.CarbonCO2{
				Grid:      models.CarbonFigures{Grams: 0.5},
				Renewable: models.CarbonFigures{Grams: 0.4},
			}},
		}},
	}

	c := Build("https://example.com/", results, time.Now()).Summary.Counts
	if c.BrokenLinks != 2 || c.OversizedImages != 1 || c.OversizedAssets != 3 || c.ThirdPartyResources != 2 {
		t.Errorf("unexpected counts: %+v", c)
	}
	if c.CarbonGridGrams == nil || *c.CarbonGridGrams != 0.5 {
		t.Errorf("grid grams: %v", c.CarbonGridGrams)
	}
	if c.CarbonRenewableGrams == nil || *c.CarbonRenewableGrams != 0.4 {
		t.Errorf("renewable grams: %v", c.CarbonRenewableGrams)
	}
}
