package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/use-agent/pageaudit/config"
	"github.com/use-agent/pageaudit/models"
	"github.com/use-agent/pageaudit/probes"
	"github.com/use-agent/pageaudit/report"
	"github.com/use-agent/pageaudit/session"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pageaudit <url>",
		Short: "Audit a single web page and write a JSON report plus a PDF summary",
		Long: `pageaudit loads one page in a headless browser, runs a battery of
inspection probes against it (performance, SEO metadata, security headers,
broken links, asset and image weight, fonts, cookies, third-party
resources, redirects, carbon impact) and aggregates the findings into one
report, written as JSON and as a printable PDF.

A failing probe never loses the rest of the report; only a browser that
cannot be launched aborts the run.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runAudit,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("json-out", "j", "", "override the JSON report path")
	cmd.Flags().StringP("pdf-out", "p", "", "override the PDF report path")

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	initLogger(cfg.Log)

	target := args[0]
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("target must be an http(s) URL, got %q", target)
	}

	if v, _ := cmd.Flags().GetString("json-out"); v != "" {
		cfg.Report.JSONPath = v
	}
	if v, _ := cmd.Flags().GetString("pdf-out"); v != "" {
		cfg.Report.PDFPath = v
	}

	slog.Info("pageaudit starting", "url", target)

	// A launch failure is fatal: without a session nothing can run.
	sess, err := session.Acquire(cfg.Browser, cfg.Audit.NavTimeout)
	if err != nil {
		return err
	}
	defer sess.Release()
	sess.WatchJSExceptions()

	ctx := cmd.Context()

	fetcher := probes.NewFetchClient(
		cfg.Audit.LinkRPS,
		cfg.Audit.LinkConcurrency,
		cfg.Audit.LinkTimeout,
	)

	runner := probes.NewRunner(buildProbes(cfg, target, sess, fetcher), cfg.Audit.ProbeTimeout, slog.Default())
	results := runner.Run(ctx)
	rep := report.Build(target, results, time.Now().UTC())

	// The JSON artifact is the guaranteed output; write it before anything
	// that might still fail.
	if err := report.WriteJSONFile(cfg.Report.JSONPath, rep); err != nil {
		return err
	}
	slog.Info("JSON report written", "path", cfg.Report.JSONPath)

	pdf, err := sess.PDF(ctx, report.RenderHTML(rep))
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Report.PDFPath, pdf, 0o644); err != nil {
		return models.NewAuditError(models.ErrCodeRender, "writing PDF report", err)
	}
	slog.Info("PDF report written", "path", cfg.Report.PDFPath)

	logSummary(rep)
	return nil
}

// buildProbes assembles the run's probe list. Order matters: the probes
// that navigate on their own run first, the settled-page probes next, then
// the two reload-capture probes (each its own register-then-reload unit),
// and the external calls last.
//
// The settled-page probes read through a SettledPage, never the raw session:
// the navigation probes only observe response events, so it is the settle
// gate that actually loads the document and waits for the DOM before the
// first read.
func buildProbes(cfg *config.Config, target string, sess *session.Session, fetcher *probes.FetchClient) []probes.Probe {
	settled := &probes.SettledPage{URL: target, Page: sess}

	return []probes.Probe{
		&probes.SecurityHeaders{URL: target, Fetcher: sess},
		&probes.Redirects{URL: target, Fetcher: sess},
		&probes.Metadata{Source: settled},
		&probes.BrokenLinks{
			URL:         target,
			Source:      settled,
			Fetcher:     fetcher,
			Concurrency: cfg.Audit.LinkConcurrency,
		},
		&probes.Images{
			URL:         target,
			Source:      settled,
			Fetcher:     fetcher,
			Threshold:   cfg.Audit.LargeImageBytes,
			Concurrency: cfg.Audit.LinkConcurrency,
		},
		&probes.Fonts{Source: settled},
		&probes.Cookies{Source: settled},
		&probes.Assets{Capturer: sess, Threshold: cfg.Audit.LargeAssetBytes},
		&probes.ThirdParty{URL: target, Capturer: sess},
		&probes.Performance{
			URL:        target,
			Endpoint:   cfg.Perf.Endpoint,
			ControlURL: sess.ControlURL(),
		},
		&probes.Carbon{URL: target, Endpoint: cfg.Carbon.Endpoint},
	}
}

// logSummary prints the human-readable run summary: per-category scores and
// counts, and every probe that did not complete cleanly, with its reason.
func logSummary(rep *models.Report) {
	s := rep.Summary
	slog.Info("audit summary",
		"url", rep.URL,
		"performance", categoryLine(s.Performance),
		"seo", categoryLine(s.SEO),
		"accessibility", categoryLine(s.Accessibility),
		"securityHeaders", string(s.SecurityHeaders.Status),
		"brokenLinks", s.Counts.BrokenLinks,
		"oversizedImages", s.Counts.OversizedImages,
		"oversizedAssets", s.Counts.OversizedAssets,
		"thirdParty", s.Counts.ThirdPartyResources,
	)
	for _, res := range rep.Results {
		if res.Status == models.StatusOK {
			continue
		}
		slog.Warn("probe did not complete cleanly",
			"probe", res.Name,
			"status", string(res.Status),
			"reason", res.Error,
		)
	}
}

func categoryLine(c models.CategorySummary) string {
	if c.Score == nil {
		return string(c.Status)
	}
	return fmt.Sprintf("%d (%s)", *c.Score, c.Status)
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
