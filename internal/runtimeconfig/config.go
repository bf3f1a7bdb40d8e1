package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMailEndpointRequired indicates mail delivery was enabled without an API endpoint.
var ErrMailEndpointRequired = errors.New("sitecms config: mail endpoint is required when mail is enabled")

// ErrMailSenderRequired indicates mail delivery was enabled without a sender address.
var ErrMailSenderRequired = errors.New("sitecms config: mail from address is required when mail is enabled")

// ErrUploadEndpointRequired indicates the upload proxy was enabled without a host endpoint.
var ErrUploadEndpointRequired = errors.New("sitecms config: upload host endpoint is required when uploads are enabled")

// ErrVisitDedupWindowInvalid rejects negative deduplication windows.
var ErrVisitDedupWindowInvalid = errors.New("sitecms config: visit dedup window must be zero or positive")

var ErrLoggingProviderRequired = errors.New("sitecms config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("sitecms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitecms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitecms config: logging format is invalid")

// Config aggregates adapter bindings and behaviour toggles for the site module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled bool
	HTTP    HTTPConfig
	Cache   CacheConfig
	Visits  VisitsConfig
	Mail    MailConfig
	Uploads UploadConfig
	Logging LoggingConfig
	Seed    SeedConfig
}

// HTTPConfig captures the listen address and public base path for the API.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
	StatsTTL   time.Duration
}

// VisitsConfig controls page view recording.
type VisitsConfig struct {
	DedupWindow time.Duration
	GeoBaseURL  string
}

// MailConfig wires the transactional email provider.
type MailConfig struct {
	Enabled          bool
	Endpoint         string
	APIKey           string
	From             string
	FromName         string
	ContactRecipient string
}

// UploadConfig wires the external media host proxy.
type UploadConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	MaxSize  int64
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// SeedConfig controls first-run content seeding.
type SeedConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
}

// DefaultConfig returns the settings used when the host supplies nothing.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
			StatsTTL:   time.Minute,
		},
		Visits: VisitsConfig{
			DedupWindow: 5 * time.Minute,
			GeoBaseURL:  "http://ip-api.com/json",
		},
		Uploads: UploadConfig{},
		Logging: LoggingConfig{
			Enabled:  true,
			Provider: "gologger",
			Level:    "info",
		},
		Seed: SeedConfig{
			ContentDir: "content",
			Pattern:    "*.md",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Visits.DedupWindow < 0 {
		return ErrVisitDedupWindowInvalid
	}
	if cfg.Mail.Enabled {
		if strings.TrimSpace(cfg.Mail.Endpoint) == "" {
			return ErrMailEndpointRequired
		}
		if strings.TrimSpace(cfg.Mail.From) == "" {
			return ErrMailSenderRequired
		}
	}
	if cfg.Uploads.Enabled {
		if strings.TrimSpace(cfg.Uploads.Endpoint) == "" {
			return ErrUploadEndpointRequired
		}
	}
	if cfg.Logging.Enabled {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
