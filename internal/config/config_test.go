package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultPolicy != PolicyFIFO || !cfg.Journal {
		t.Fatalf("defaults = %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "db")); err != nil {
		t.Fatalf("db directory not created: %v", err)
	}

	dbPath, err := cfg.ResolvedDatabasePath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "db", "homesolution.sqlite"); dbPath != want {
		t.Fatalf("database path = %s, want %s", dbPath, want)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	body := "default_policy = \"least-delay\"\njournal = false\ndatabase_path = \"/tmp/hs.sqlite\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultPolicy != PolicyLeastDelay || cfg.Journal || cfg.DatabasePath != "/tmp/hs.sqlite" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("default_policy = \"random\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "default_policy") {
		t.Fatalf("Load error = %v, want a default_policy complaint", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	if err := EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	in := &Config{DefaultPolicy: PolicyLeastDelay, Journal: true}
	if err := Save(in); err != nil {
		t.Fatal(err)
	}
	out, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if *out != *in {
		t.Fatalf("loaded %+v, saved %+v", out, in)
	}
}
