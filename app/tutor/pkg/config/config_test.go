package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
llm:
  base_url: http://localhost:8000/v1
  api_key: sk-test
  model: qwen-plus
  timeout: 30s
  max_retries: 5
log:
  level: debug
  file: logs/tutor.log
concurrency:
  qps: 2
  rpm: 120
db:
  host: localhost
  port: 5433
  user: tutor
  password: secret
  name: math_tutor
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LLM.BaseURL != "http://localhost:8000/v1" || cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "qwen-plus" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 30*time.Second || cfg.LLM.MaxRetries != 5 {
		t.Errorf("LLM timeout/retries = %v/%d", cfg.LLM.Timeout, cfg.LLM.MaxRetries)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "logs/tutor.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Concurrency.QPS != 2 || cfg.Concurrency.RPM != 120 {
		t.Errorf("Concurrency = %+v", cfg.Concurrency)
	}
	if !cfg.DB.Enabled() {
		t.Error("DB.Enabled() = false")
	}
	if want := "host=localhost port=5433 user=tutor password=secret dbname=math_tutor sslmode=disable"; cfg.DB.DSN() != want {
		t.Errorf("DB.DSN() = %q, want %q", cfg.DB.DSN(), want)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-env")
	path := writeConfig(t, "log:\n  file: \"\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LLM.BaseURL != DefaultBaseURL || cfg.LLM.Model != DefaultModel {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.APIKey != "sk-env" {
		t.Errorf("LLM.APIKey = %q, want value from %s", cfg.LLM.APIKey, APIKeyEnv)
	}
	if cfg.LLM.Timeout != DefaultTimeout || cfg.LLM.MaxRetries != DefaultMaxRetries {
		t.Errorf("LLM timeout/retries = %v/%d", cfg.LLM.Timeout, cfg.LLM.MaxRetries)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Concurrency.QPS != DefaultQPS || cfg.Concurrency.RPM != DefaultRPM {
		t.Errorf("Concurrency = %+v", cfg.Concurrency)
	}
	if cfg.DB.Enabled() {
		t.Error("DB.Enabled() = true without host")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() on missing file: want error")
	}
	if _, err := LoadConfig(writeConfig(t, "llm: [unclosed")); err == nil {
		t.Error("LoadConfig() on invalid yaml: want error")
	}
}
