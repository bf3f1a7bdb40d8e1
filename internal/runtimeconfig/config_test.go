package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/nawras-digital/sitecms/internal/runtimeconfig"
)

func TestConfigValidate_AllowsDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresMailEndpointWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Mail.Enabled = true
	cfg.Mail.Endpoint = " "
	cfg.Mail.From = "noreply@example.com"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMailEndpointRequired) {
		t.Fatalf("expected ErrMailEndpointRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresMailSenderWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Mail.Enabled = true
	cfg.Mail.Endpoint = "https://mail.example.com/send"
	cfg.Mail.From = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMailSenderRequired) {
		t.Fatalf("expected ErrMailSenderRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresUploadEndpointWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Uploads.Enabled = true
	cfg.Uploads.Endpoint = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrUploadEndpointRequired) {
		t.Fatalf("expected ErrUploadEndpointRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeDedupWindow(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Visits.DedupWindow = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrVisitDedupWindowInvalid) {
		t.Fatalf("expected ErrVisitDedupWindowInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
