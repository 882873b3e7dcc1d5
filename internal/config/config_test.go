package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected address %q", cfg.Server.Address)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.JSON {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if !cfg.Policy.Watch || cfg.Policy.Path == "" {
		t.Fatalf("unexpected policy defaults %+v", cfg.Policy)
	}
	if cfg.Slack.Channel != "#revenue-alerts" {
		t.Fatalf("unexpected slack channel %q", cfg.Slack.Channel)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  address: \":9999\"\n  gracefulTimeout: 3s\nlogging:\n  level: debug\n  json: true\nscan:\n  schedule: \"*/5 * * * *\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":9999" {
		t.Fatalf("unexpected address %q", cfg.Server.Address)
	}
	if cfg.Server.GracefulTimeout != 3*time.Second {
		t.Fatalf("unexpected graceful timeout %s", cfg.Server.GracefulTimeout)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.JSON {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Scan.Schedule != "*/5 * * * *" {
		t.Fatalf("unexpected schedule %q", cfg.Scan.Schedule)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicit missing config path must fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REVLEAK_SERVER_ADDRESS", ":7777")
	t.Setenv("REVLEAK_LOG_LEVEL", "warn")
	t.Setenv("REVLEAK_LOG_FORMAT", "json")
	t.Setenv("REVLEAK_POLICY_WATCH", "false")
	t.Setenv("REVLEAK_SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	t.Setenv("REVLEAK_SCAN_SCHEDULE", "0 * * * *")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Address != ":7777" {
		t.Fatalf("env address override not applied: %q", cfg.Server.Address)
	}
	if cfg.Logging.Level != "warn" || !cfg.Logging.JSON {
		t.Fatalf("env logging overrides not applied: %+v", cfg.Logging)
	}
	if cfg.Policy.Watch {
		t.Fatalf("env watch override not applied")
	}
	if cfg.Slack.WebhookURL == "" {
		t.Fatalf("env webhook override not applied")
	}
	if cfg.Scan.Schedule != "0 * * * *" {
		t.Fatalf("env schedule override not applied: %q", cfg.Scan.Schedule)
	}
}
