package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bodul/xwplayer/puzzle"
)

func noEnv(string) string { return "" }

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", noEnv)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Alphabet.Name != puzzle.Arabic.Name {
		t.Fatalf("expected arabic by default, got %s", opts.Alphabet.Name)
	}
	if opts.ClockInterval != time.Second {
		t.Fatalf("expected 1s clock, got %s", opts.ClockInterval)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xwplayer.toml")
	data := `
addr = ":9000"
alphabet = "latin"
clock_interval = "500ms"
generate_timeout = "30s"

[gemini]
project = "demo"
model = "gemini-2.5-pro"
temperature = 0.4

[mysql]
dsn = "user:pass@tcp(localhost:3306)/xw"

[limits]
create_per_minute = 2
input_per_second = 10
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, noEnv)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
	if cfg.Alphabet != "latin" {
		t.Errorf("alphabet: got %q", cfg.Alphabet)
	}
	if cfg.MySQL.DSN == "" {
		t.Error("mysql dsn not read")
	}
	if cfg.ClockInterval.Duration != 500*time.Millisecond {
		t.Errorf("clock_interval: got %s", cfg.ClockInterval.Duration)
	}
	if cfg.GenerateTimeout.Duration != 30*time.Second {
		t.Errorf("generate_timeout: got %s", cfg.GenerateTimeout.Duration)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" || cfg.Gemini.Temperature != 0.4 {
		t.Errorf("gemini: got %+v", cfg.Gemini)
	}
	if cfg.Limits.CreatePerMinute != 2 || cfg.Limits.InputPerSecond != 10 {
		t.Errorf("limits: got %+v", cfg.Limits)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), noEnv); err == nil {
		t.Fatal("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte(`clock_interval = "soon"`), 0o600)
	if _, err := loadConfig(path, noEnv); err == nil {
		t.Fatal("expected error for an invalid duration")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":               "7000",
		"CROSSWORD_ALPHABET": "latin",
		"GCP_PROJECT_ID":     "proj",
		"GCP_REGION":         "us-central1",
		"GEMINI_API_KEY":     "key",
		"MYSQL_DSN":          "dsn",
	}
	cfg := DefaultConfig()
	cfg.applyEnv(func(k string) string { return env[k] })

	if cfg.Addr != ":7000" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
	if cfg.Alphabet != "latin" {
		t.Errorf("alphabet: got %q", cfg.Alphabet)
	}
	if cfg.Gemini.Project != "proj" || cfg.Gemini.Region != "us-central1" || cfg.Gemini.APIKey != "key" {
		t.Errorf("gemini: got %+v", cfg.Gemini)
	}
	if !cfg.Gemini.Enabled() {
		t.Error("gemini should be enabled")
	}
	if cfg.MySQL.DSN != "dsn" {
		t.Errorf("mysql: got %q", cfg.MySQL.DSN)
	}
}

func TestOptionsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alphabet = "klingon"
	if _, err := cfg.Options(); err == nil {
		t.Fatal("expected error for unknown alphabet")
	}

	cfg = DefaultConfig()
	cfg.ClockInterval.Duration = 0
	if _, err := cfg.Options(); err == nil {
		t.Fatal("expected error for a zero clock interval")
	}
}
