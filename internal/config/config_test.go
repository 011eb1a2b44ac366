package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("timeout = %v, want 0", cfg.API.Timeout)
	}
	if cfg.Data.Dir == "" {
		t.Error("data dir default is empty")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	content := "api:\n  base_url: https://coach.example.com\n  timeout: 30s\ndata:\n  dir: /tmp/calibra-test\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != "https://coach.example.com" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Data.Dir != "/tmp/calibra-test" {
		t.Errorf("data dir = %q", cfg.Data.Dir)
	}
}
