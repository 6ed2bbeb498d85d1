package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Site        SiteConfig
	Fetch       FetchConfig
	Enrich      EnrichConfig
	Scheduler   SchedulerConfig
	S3          S3Config
	OutputDir   string
	JournalDSN  string
	ProxyURL    string
	MetricsPort string
	LogPath     string
}

// SiteConfig describes the one listing site a run harvests. Values come from
// config/site.yaml when present, with env vars taking precedence.
type SiteConfig struct {
	BaseURL        string   `yaml:"base_url"`
	MaxPages       int      `yaml:"max_pages"`
	PageDelayMS    int      `yaml:"page_delay_ms"`
	Municipalities []string `yaml:"municipalities"`
}

type FetchConfig struct {
	MaxAttempts  int
	RetryDelayMS int
	TimeoutMS    int
}

type EnrichConfig struct {
	Workers    int
	RatePerSec int
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// DefaultMunicipalities is the served-area allow-list used when the site
// file does not override it. Multi-word names come first so "North
// Vancouver" wins over "Vancouver".
var DefaultMunicipalities = []string{
	"North Vancouver",
	"West Vancouver",
	"New Westminster",
	"Port Coquitlam",
	"Port Moody",
	"Maple Ridge",
	"Pitt Meadows",
	"White Rock",
	"Vancouver",
	"Burnaby",
	"Richmond",
	"Surrey",
	"Coquitlam",
	"Delta",
	"Langley",
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Site: SiteConfig{
			Municipalities: DefaultMunicipalities,
		},
		Fetch: FetchConfig{
			MaxAttempts:  getEnvInt("FETCH_MAX_ATTEMPTS", 3),
			RetryDelayMS: getEnvInt("FETCH_RETRY_DELAY_MS", 1000),
			TimeoutMS:    getEnvInt("FETCH_TIMEOUT_MS", 10000),
		},
		Enrich: EnrichConfig{
			Workers:    getEnvInt("ENRICH_WORKERS", 8),
			RatePerSec: getEnvInt("ENRICH_RATE_PER_SEC", 0),
		},
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("HARVEST_CRON"),
		},
		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		OutputDir:   getEnv("OUTPUT_DIR", "output"),
		JournalDSN:  getEnv("JOURNAL_DSN", "harvester.db"),
		ProxyURL:    os.Getenv("SCRAPE_PROXY_URL"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		LogPath:     getEnv("LOG_PATH", "harvester.log"),
	}

	if interval := os.Getenv("HARVEST_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	if err := cfg.loadSiteConfig("config/site.yaml"); err != nil {
		return nil, err
	}

	// Env overrides on top of the site file.
	if v := os.Getenv("LISTINGS_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := getEnvInt("MAX_PAGES", 0); v > 0 {
		cfg.Site.MaxPages = v
	}
	if v := getEnvInt("PAGE_DELAY_MS", 0); v > 0 {
		cfg.Site.PageDelayMS = v
	}

	if cfg.Site.MaxPages == 0 {
		cfg.Site.MaxPages = 20
	}
	if cfg.Site.PageDelayMS == 0 {
		cfg.Site.PageDelayMS = 1500
	}

	return cfg, nil
}

func (c *Config) loadSiteConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var site SiteConfig
	if err := yaml.Unmarshal(data, &site); err != nil {
		return err
	}

	if site.BaseURL != "" {
		c.Site.BaseURL = site.BaseURL
	}
	if site.MaxPages > 0 {
		c.Site.MaxPages = site.MaxPages
	}
	if site.PageDelayMS > 0 {
		c.Site.PageDelayMS = site.PageDelayMS
	}
	if len(site.Municipalities) > 0 {
		c.Site.Municipalities = site.Municipalities
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
