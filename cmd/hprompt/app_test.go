package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/hprompt/pkg/config"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

const testSpec = `openapi: 3.0.0
paths:
  /pets:
    get: {}
  /pets/{id}:
    get: {}
  /store/inventory:
    get: {}
`

func writeTestFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	specPath := filepath.Join(dir, "openapi.yaml")

	cfg := config.DefaultConfig()
	cfg.Session.URL = "http://api.test/v1"
	cfg.Completer.MaxSuggestions = 7
	cfg.HeaderValues = map[string][]string{"X-Env": {"prod", "dev"}}
	if err := config.SaveConfig(cfg, configPath); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(specPath, []byte(testSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, specPath
}

func TestNewApp(t *testing.T) {
	configPath, specPath := writeTestFiles(t)

	testCases := []struct {
		description string
		opts        appOptions
		expURL      string
		expLimit    int
	}{
		{"config values", appOptions{configPath: configPath}, "http://api.test/v1", 7},
		{"flags win", appOptions{configPath: configPath, url: "https://other.test/", limit: 3}, "https://other.test", 3},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			tc.opts.spec = specPath
			a, err := newApp(tc.opts)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if a.ctx.URL != tc.expURL {
				t.Errorf("Expected URL '%s', got '%s'", tc.expURL, a.ctx.URL)
			}
			if a.limit != tc.expLimit {
				t.Errorf("Expected limit %d, got %d", tc.expLimit, a.limit)
			}
			if a.historyPath() != filepath.Join(filepath.Dir(configPath), "history") {
				t.Errorf("Unexpected history path '%s'", a.historyPath())
			}
		})
	}
}

func TestNewAppSeedsTreeAndHeaders(t *testing.T) {
	configPath, specPath := writeTestFiles(t)
	a, err := newApp(appOptions{configPath: configPath, spec: specPath})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	res, err := a.executor.Execute("ls /")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Output != "pets/\nstore/" {
		t.Errorf("Expected seeded paths, got '%s'", res.Output)
	}

	var values []string
	for _, c := range a.completer.Suggest("X-Env:", 0) {
		values = append(values, c.Text)
	}
	if !reflect.DeepEqual(values, []string{"dev", "prod"}) {
		t.Errorf("Expected configured header values, got %v", values)
	}
}

func TestNewAppMissingSpec(t *testing.T) {
	configPath, _ := writeTestFiles(t)
	_, err := newApp(appOptions{configPath: configPath, spec: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil || !strings.Contains(err.Error(), "open spec") {
		t.Errorf("Expected an open spec error, got %v", err)
	}
}

func TestConfigCmdUpdate(t *testing.T) {
	configPath, _ := writeTestFiles(t)
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--config", configPath, "--url", "http://changed.test", "--max-suggestions", "12"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != configPath {
		t.Errorf("Expected config path '%s', got '%s'", configPath, out.String())
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.URL != "http://changed.test" || cfg.Completer.MaxSuggestions != 12 {
		t.Errorf("Expected updated config, got %+v", cfg.Session)
	}
	if cfg.CLI.Style != "monokai" {
		t.Errorf("Expected untouched style, got '%s'", cfg.CLI.Style)
	}
}
