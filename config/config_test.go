package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Site.MaxPages != 20 {
		t.Fatalf("expected default max pages 20, got %d", cfg.Site.MaxPages)
	}
	if cfg.Site.PageDelayMS != 1500 {
		t.Fatalf("expected default page delay 1500ms, got %d", cfg.Site.PageDelayMS)
	}
	if cfg.Fetch.MaxAttempts != 3 || cfg.Fetch.RetryDelayMS != 1000 || cfg.Fetch.TimeoutMS != 10000 {
		t.Fatalf("unexpected fetch defaults %+v", cfg.Fetch)
	}
	if cfg.Enrich.Workers != 8 {
		t.Fatalf("expected default worker pool of 8, got %d", cfg.Enrich.Workers)
	}
	if len(cfg.Site.Municipalities) == 0 {
		t.Fatal("expected default municipality allow-list")
	}
}

func TestLoad_EnvOverridesSiteFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	site := []byte("base_url: https://file.example.com/listings\nmax_pages: 5\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "site.yaml"), site, 0644); err != nil {
		t.Fatalf("write site file failed: %v", err)
	}

	t.Setenv("LISTINGS_BASE_URL", "https://env.example.com/listings")
	t.Setenv("MAX_PAGES", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Site.BaseURL != "https://env.example.com/listings" {
		t.Fatalf("expected env to win over the site file, got %q", cfg.Site.BaseURL)
	}
	if cfg.Site.MaxPages != 7 {
		t.Fatalf("expected env max pages 7, got %d", cfg.Site.MaxPages)
	}
}

func TestLoad_SiteFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	site := []byte("base_url: https://file.example.com/listings\npage_delay_ms: 800\nmunicipalities:\n  - Victoria\n  - Saanich\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "site.yaml"), site, 0644); err != nil {
		t.Fatalf("write site file failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Site.BaseURL != "https://file.example.com/listings" {
		t.Fatalf("unexpected base URL %q", cfg.Site.BaseURL)
	}
	if cfg.Site.PageDelayMS != 800 {
		t.Fatalf("expected page delay 800, got %d", cfg.Site.PageDelayMS)
	}
	if len(cfg.Site.Municipalities) != 2 || cfg.Site.Municipalities[0] != "Victoria" {
		t.Fatalf("expected municipalities from site file, got %v", cfg.Site.Municipalities)
	}
}
