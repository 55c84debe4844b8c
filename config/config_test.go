package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdash.yaml")
	body := `
endpoint:
  url: http://10.0.0.1:3128/net.json
ui:
  enabled: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint.URL != "http://10.0.0.1:3128/net.json" {
		t.Fatalf("url = %q", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.TimeoutSeconds != 4 {
		t.Fatalf("timeout default = %d, want 4", cfg.Endpoint.TimeoutSeconds)
	}
	if cfg.Poll.PeriodSeconds != 5 {
		t.Fatalf("period default = %d, want 5", cfg.Poll.PeriodSeconds)
	}
	if cfg.UI.TargetFPS != 30 {
		t.Fatalf("fps default = %d, want 30", cfg.UI.TargetFPS)
	}
	if cfg.Logging.RetentionDays != 7 {
		t.Fatalf("retention default = %d, want 7", cfg.Logging.RetentionDays)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdash.yaml")
	if err := os.WriteFile(path, []byte("endpoint: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.UI.Enabled {
		t.Fatalf("default config must enable the UI")
	}
	if cfg.Endpoint.URL == "" {
		t.Fatalf("default config must name an endpoint")
	}
}
