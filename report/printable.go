package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/use-agent/pageaudit/models"
)

// placeholder is rendered wherever a value is missing; the printable
// document never fails over a hole in the data.
const placeholder = "N/A"

// boilerplateNotes is the fixed recommendations section of the printable
// report.
var boilerplateNotes = []string{
	"Compress images over 100 KiB and serve them in next-gen formats.",
	"Bundle, minify and split CSS/JS assets over 50 KiB.",
	"Self-host critical fonts and keep third-party scripts to a minimum.",
	"Fix broken links; they hurt both visitors and crawlers.",
}

type printableView struct {
	URL         string
	GeneratedAt string
	Rows        []scoreRow
	Counts      []countRow
	Notes       []string
}

type scoreRow struct {
	Category       string
	Score          string
	Status         string
	Recommendation string
}

type countRow struct {
	Label string
	Value string
}

var printableTmpl = template.Must(template.New("printable").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Page audit report</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .meta { color: #666; font-size: 12px; margin-bottom: 24px; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
  th, td { border: 1px solid #ccc; padding: 8px 10px; font-size: 13px; text-align: left; }
  th { background: #f0f0f0; }
  .status-good { color: #0a7a2f; font-weight: bold; }
  .status-needs-improvement { color: #b35c00; font-weight: bold; }
  .status-unknown { color: #666; }
  ul { font-size: 13px; }
</style>
</head>
<body>
<h1>Page audit report</h1>
<p class="meta">{{.URL}} &mdash; generated {{.GeneratedAt}}</p>

<h2>Scores</h2>
<table>
  <tr><th>Category</th><th>Score</th><th>Status</th><th>Recommendation</th></tr>
{{- range .Rows}}
  <tr>
    <td>{{.Category}}</td>
    <td>{{.Score}}</td>
    <td class="status-{{.Status}}">{{.Status}}</td>
    <td>{{.Recommendation}}</td>
  </tr>
{{- end}}
</table>

<h2>Problem counts</h2>
<table>
{{- range .Counts}}
  <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>

<h2>Recommendations</h2>
<ul>
{{- range .Notes}}
  <li>{{.}}</li>
{{- end}}
</ul>
</body>
</html>
`))

// RenderHTML renders the printable summary document. It is deterministic
// and total: two reports that differ only in timestamp produce output that
// differs only in the rendered timestamp, and missing values render as an
// explicit placeholder instead of failing.
func RenderHTML(r *models.Report) string {
	var buf bytes.Buffer
	if err := printableTmpl.Execute(&buf, buildView(r)); err != nil {
		// The view contains only plain strings, so this should not happen;
		// keep the never-fails contract regardless.
		return "<html><body><p>report rendering failed: " +
			template.HTMLEscapeString(err.Error()) + "</p></body></html>"
	}
	return buf.String()
}

func buildView(r *models.Report) printableView {
	s := r.Summary
	return printableView{
		URL:         r.URL,
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		Rows: []scoreRow{
			categoryRow("Performance", s.Performance),
			categoryRow("SEO", s.SEO),
			categoryRow("Accessibility", s.Accessibility),
			categoryRow("Security headers", s.SecurityHeaders),
		},
		Counts: []countRow{
			{Label: "Broken links", Value: strconv.Itoa(s.Counts.BrokenLinks)},
			{Label: "Oversized images", Value: strconv.Itoa(s.Counts.OversizedImages)},
			{Label: "Oversized CSS/JS assets", Value: strconv.Itoa(s.Counts.OversizedAssets)},
			{Label: "Third-party resources", Value: strconv.Itoa(s.Counts.ThirdPartyResources)},
			{Label: "CO2 per visit (grid)", Value: gramsOr(s.Counts.CarbonGridGrams)},
			{Label: "CO2 per visit (renewable)", Value: gramsOr(s.Counts.CarbonRenewableGrams)},
		},
		Notes: boilerplateNotes,
	}
}

func categoryRow(label string, c models.CategorySummary) scoreRow {
	score := placeholder
	if c.Score != nil {
		score = strconv.Itoa(*c.Score)
	}
	status := string(c.Status)
	if status == "" {
		status = string(models.StatusUnknown)
	}
	recommendation := c.Recommendation
	if recommendation == "" {
		recommendation = placeholder
	}
	return scoreRow{
		Category:       label,
		Score:          score,
		Status:         status,
		Recommendation: recommendation,
	}
}

func gramsOr(grams *float64) string {
	if grams == nil {
		return placeholder
	}
	return fmt.Sprintf("%.3f g", *grams)
}
