package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mls_harvester/config"
	"mls_harvester/extract"
	"mls_harvester/fetch"
	"mls_harvester/httputil"
	"mls_harvester/logging"
	"mls_harvester/observability"
	"mls_harvester/scheduler"
	"mls_harvester/scraper"
	"mls_harvester/storage"
)

var (
	harvestNow = flag.Bool("harvest", false, "Run one harvest and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting mls_harvester...")

	if cfg.Site.BaseURL == "" {
		log.Fatal("LISTINGS_BASE_URL (or config/site.yaml base_url) is required")
	}
	log.Printf("Site: %s (max %d pages)", cfg.Site.BaseURL, cfg.Site.MaxPages)

	ctx := context.Background()

	journal, err := openJournal(ctx, cfg.JournalDSN)
	if err != nil {
		log.Fatalf("Failed to open run journal: %v", err)
	}
	defer journal.Close()

	sink := buildSink(ctx, cfg)

	client := httputil.NewScrapingClient(cfg.ProxyURL, time.Duration(cfg.Fetch.TimeoutMS)*time.Millisecond)
	fetcher := fetch.New(client, cfg.Fetch.MaxAttempts, time.Duration(cfg.Fetch.RetryDelayMS)*time.Millisecond)

	addresses := extract.NewAddressParser(cfg.Site.Municipalities)
	extractor := extract.NewSummaryExtractor(addresses)

	crawler := scraper.NewCrawler(fetcher, extractor, cfg.Site.BaseURL, cfg.Site.MaxPages,
		time.Duration(cfg.Site.PageDelayMS)*time.Millisecond)
	enricher := scraper.NewEnricher(fetcher, cfg.Enrich.Workers, cfg.Enrich.RatePerSec)
	pipeline := scraper.NewPipeline(crawler, enricher, journal, sink, cfg.OutputDir)

	if *harvestNow {
		log.Println("Running harvest...")
		if err := pipeline.Run(ctx); err != nil {
			log.Fatalf("Harvest failed: %v", err)
		}
		log.Println("Harvest complete!")
		return
	}

	// Daemon mode
	if cfg.MetricsPort != "" {
		observability.Start(cfg.MetricsPort)
		log.Printf("Metrics listening on :%s", cfg.MetricsPort)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(cfg.Scheduler, pipeline)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	log.Println("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()
	log.Println("Goodbye!")
}

func openJournal(ctx context.Context, dsn string) (storage.RunJournal, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Printf("Run journal: Postgres (%s)", maskConnectionString(dsn))
		return storage.NewPostgresJournal(ctx, dsn)
	}
	log.Printf("Run journal: SQLite (%s)", dsn)
	return storage.NewSQLiteJournal(dsn)
}

func buildSink(ctx context.Context, cfg *config.Config) storage.IndexSink {
	if cfg.S3.Bucket == "" {
		log.Println("Index sink: none configured, snapshots stay local")
		return storage.NoOpSink{}
	}

	sink, err := storage.NewS3Sink(ctx, storage.S3Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
	})
	if err != nil {
		log.Printf("Warning: S3 sink unavailable, snapshots stay local: %v", err)
		return storage.NoOpSink{}
	}
	log.Printf("Index sink: s3://%s", cfg.S3.Bucket)
	return sink
}

// maskConnectionString masks password in connection string for logging
func maskConnectionString(connStr string) string {
	start := strings.Index(connStr, "://")
	if start < 0 {
		return connStr
	}
	start += 3

	rest := connStr[start:]
	atIdx := strings.Index(rest, "@")
	if atIdx < 0 {
		return connStr
	}
	colonIdx := strings.Index(rest[:atIdx], ":")
	if colonIdx < 0 {
		return connStr
	}

	return connStr[:start+colonIdx+1] + "****" + rest[atIdx:]
}
