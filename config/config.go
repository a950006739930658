package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig
	Audit   AuditConfig
	Perf    PerfConfig
	Carbon  CarbonConfig
	Report  ReportConfig
	Log     LogConfig
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Stealth injects stealth JS before every navigation.
	Stealth bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// AuditConfig controls probe behavior.
type AuditConfig struct {
	// NavTimeout bounds a single navigation or reload, including the wait
	// for the page to be considered loaded.
	NavTimeout time.Duration // default: 60s

	// ProbeTimeout bounds one probe execution end to end.
	ProbeTimeout time.Duration // default: 90s

	// LinkTimeout is the per-request deadline for outbound link and image
	// checks.
	LinkTimeout time.Duration // default: 10s

	// LinkConcurrency bounds concurrent outbound link/image fetches.
	// These fetches never touch the browser session.
	LinkConcurrency int // default: 4

	// LinkRPS is the sustained outbound fetch rate.
	LinkRPS float64 // default: 8

	// LargeImageBytes is the weight threshold above which an image is
	// reported as oversized.
	LargeImageBytes int64 // default: 100 KiB

	// LargeAssetBytes is the weight threshold above which a CSS/JS asset
	// is reported as oversized.
	LargeAssetBytes int64 // default: 50 KiB
}

// PerfConfig controls the external performance-audit service.
type PerfConfig struct {
	// Endpoint is the audit service URL. Empty disables the probe (it then
	// reports a failed result, not a crash).
	Endpoint string
}

// CarbonConfig controls the carbon-impact provider.
type CarbonConfig struct {
	// Endpoint is the provider's API base URL.
	Endpoint string // default: "https://api.websitecarbon.com"
}

// ReportConfig controls where the report artifacts are written.
type ReportConfig struct {
	JSONPath string // default: "report.json"
	PDFPath  string // default: "report.pdf"
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:   envBoolOr("PAGEAUDIT_HEADLESS", true),
			NoSandbox:  envBoolOr("PAGEAUDIT_NO_SANDBOX", false),
			Stealth:    envBoolOr("PAGEAUDIT_STEALTH", false),
			BrowserBin: os.Getenv("PAGEAUDIT_BROWSER_BIN"),
		},
		Audit: AuditConfig{
			NavTimeout:      envDurationOr("PAGEAUDIT_NAV_TIMEOUT", 60*time.Second),
			ProbeTimeout:    envDurationOr("PAGEAUDIT_PROBE_TIMEOUT", 90*time.Second),
			LinkTimeout:     envDurationOr("PAGEAUDIT_LINK_TIMEOUT", 10*time.Second),
			LinkConcurrency: envIntOr("PAGEAUDIT_LINK_CONCURRENCY", 4),
			LinkRPS:         envFloatOr("PAGEAUDIT_LINK_RPS", 8.0),
			LargeImageBytes: envInt64Or("PAGEAUDIT_LARGE_IMAGE_BYTES", 100*1024),
			LargeAssetBytes: envInt64Or("PAGEAUDIT_LARGE_ASSET_BYTES", 50*1024),
		},
		Perf: PerfConfig{
			Endpoint: os.Getenv("PAGEAUDIT_PERF_ENDPOINT"),
		},
		Carbon: CarbonConfig{
			Endpoint: envOr("PAGEAUDIT_CARBON_ENDPOINT", "https://api.websitecarbon.com"),
		},
		Report: ReportConfig{
			JSONPath: envOr("PAGEAUDIT_JSON_PATH", "report.json"),
			PDFPath:  envOr("PAGEAUDIT_PDF_PATH", "report.pdf"),
		},
		Log: LogConfig{
			Level:  envOr("PAGEAUDIT_LOG_LEVEL", "info"),
			Format: envOr("PAGEAUDIT_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
