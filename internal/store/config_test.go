package store

import (
	"os"
	"path/filepath"
	"testing"
)

func setCreds(t *testing.T) {
	t.Setenv("api_key", "key123")
	t.Setenv("username", "A123456")
	t.Setenv("pwd", "1234")
	t.Setenv("token", "GEZDGNBVGEZDGNBVGEZDGNBV")
	t.Setenv("correlation_id", "corr-1")
}

func TestLoadConfigDefaults(t *testing.T) {
	setCreds(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.BaseURL != "https://apiconnect.angelone.in" {
		t.Errorf("Unexpected base URL: %s", cfg.BaseURL)
	}
	if cfg.Exchange != "NSE" {
		t.Errorf("Expected NSE exchange, got %s", cfg.Exchange)
	}
	if cfg.DefaultSymbolToken != "3045" {
		t.Errorf("Expected default symbol token 3045, got %s", cfg.DefaultSymbolToken)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("Expected 30s timeout, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Credentials.ClientCode != "A123456" {
		t.Errorf("Credentials not loaded from env: %+v", cfg.Credentials)
	}
}

func TestLoadConfigFile(t *testing.T) {
	setCreds(t)

	p := filepath.Join(t.TempDir(), "config.yaml")
	data := "exchange: BSE\ntimeout_seconds: 7\nmetrics_addr: \"127.0.0.1:9102\"\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Exchange != "BSE" {
		t.Errorf("Expected BSE, got %s", cfg.Exchange)
	}
	if cfg.TimeoutSeconds != 7 {
		t.Errorf("Expected 7s timeout, got %d", cfg.TimeoutSeconds)
	}
	if cfg.MetricsAddr != "127.0.0.1:9102" {
		t.Errorf("Expected metrics addr, got %s", cfg.MetricsAddr)
	}
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	setCreds(t)
	t.Setenv("api_key", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error when api_key is unset")
	}
}
