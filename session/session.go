// Package session owns the lifecycle of one headless browser and the single
// page every probe in a run shares. It also provides the probe execution
// shapes that need CDP access: navigation with response capture, the
// register-then-reload network capture, DOM evaluation helpers, the cookie
// jar, and PDF printing.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/pageaudit/config"
	"github.com/use-agent/pageaudit/models"
)

// Session is the single browser-process + page pairing used for all probes
// in one run. It is owned exclusively by the run and released exactly once.
type Session struct {
	browser    *rod.Browser
	page       *rod.Page
	controlURL string
	navTimeout time.Duration

	releaseOnce sync.Once
}

// Acquire launches one headless browser and opens the run's single page.
// A launch or connect failure is fatal to the run and is returned as a
// session error; there are no retries.
func Acquire(cfg config.BrowserConfig, navTimeout time.Duration) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeSession,
			"failed to launch browser",
			err,
		)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeSession,
			"failed to connect to browser",
			err,
		)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		if closeErr := browser.Close(); closeErr != nil {
			slog.Warn("closing browser after failed page open", "error", closeErr)
		}
		return nil, models.NewAuditError(
			models.ErrCodeSession,
			"failed to open page",
			err,
		)
	}

	if cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	slog.Info("browser session ready", "controlURL", controlURL)

	return &Session{
		browser:    browser,
		page:       page,
		controlURL: controlURL,
		navTimeout: navTimeout,
	}, nil
}

// ControlURL returns the browser's DevTools endpoint. The external
// performance-audit collaborator drives the browser through it.
func (s *Session) ControlURL() string {
	return s.controlURL
}

// Release closes the page and the browser. Safe to call from a deferred
// cleanup on every exit path; only the first call does anything.
func (s *Session) Release() {
	s.releaseOnce.Do(func() {
		if err := s.page.Close(); err != nil {
			slog.Warn("closing page", "error", err)
		}
		if err := s.browser.Close(); err != nil {
			slog.Warn("closing browser", "error", err)
		}
		slog.Info("browser session released")
	})
}

// WatchJSExceptions logs uncaught page exceptions as they happen. This is a
// side channel only: nothing in the report depends on it and a noisy page
// must not affect the run.
func (s *Session) WatchJSExceptions() {
	go s.page.EachEvent(func(e *proto.RuntimeExceptionThrown) {
		detail := e.ExceptionDetails.Text
		if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
			detail = e.ExceptionDetails.Exception.Description
		}
		slog.Warn("page javascript exception",
			"detail", detail,
			"url", e.ExceptionDetails.URL,
			"line", e.ExceptionDetails.LineNumber,
		)
	})()
}
