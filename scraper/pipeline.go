package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"mls_harvester/models"
	"mls_harvester/observability"
	"mls_harvester/storage"
)

// Pipeline orchestrates one harvest: journal start, crawl, enrich, snapshot,
// sink handoff, journal finish. All collaborators are injected; the pipeline
// holds no package-level state.
type Pipeline struct {
	crawler   *Crawler
	enricher  *Enricher
	journal   storage.RunJournal
	sink      storage.IndexSink
	outputDir string
}

func NewPipeline(crawler *Crawler, enricher *Enricher, journal storage.RunJournal, sink storage.IndexSink, outputDir string) *Pipeline {
	return &Pipeline{
		crawler:   crawler,
		enricher:  enricher,
		journal:   journal,
		sink:      sink,
		outputDir: outputDir,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	run := &models.HarvestRun{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	if err := p.journal.CreateRun(ctx, run); err != nil {
		log.Printf("Warning: failed to journal run start: %v", err)
	}
	p.log(ctx, run, models.LogLevelInfo, "Starting harvest")

	summaries, pages, crawlErr := p.crawler.Crawl(ctx)
	run.PagesFetched = pages
	run.SummariesFound = len(summaries)
	observability.PagesFetched.Add(float64(pages))
	observability.SummariesCollected.Add(float64(len(summaries)))

	if crawlErr != nil {
		// Partial results are still published; only the run status records
		// that the crawl stopped early.
		run.ErrorsCount++
		run.Status = models.RunStatusPartial
		p.log(ctx, run, models.LogLevelWarn, fmt.Sprintf("Crawl aborted early with %d listings: %v", len(summaries), crawlErr))
	}

	enriched := p.enricher.Enrich(ctx, summaries)
	run.Enriched = len(enriched)
	run.Dropped = len(summaries) - len(enriched)
	observability.ListingsEnriched.Add(float64(run.Enriched))
	observability.EnrichFailures.Add(float64(run.Dropped))
	p.log(ctx, run, models.LogLevelInfo, fmt.Sprintf("Enriched %d of %d listings (%d dropped)", run.Enriched, len(summaries), run.Dropped))

	path, err := storage.WriteSnapshot(p.outputDir, run.StartedAt, enriched)
	if err != nil {
		run.Status = models.RunStatusFailed
		run.ErrorsCount++
		p.log(ctx, run, models.LogLevelError, fmt.Sprintf("Snapshot write failed: %v", err))
		p.finish(ctx, run)
		return fmt.Errorf("write snapshot: %w", err)
	}
	run.SnapshotPath = path
	p.log(ctx, run, models.LogLevelInfo, fmt.Sprintf("Snapshot written: %s", path))

	// The snapshot file already exists, so a sink failure is recorded but
	// never fails the run.
	if err := p.sink.Publish(ctx, path); err != nil {
		run.ErrorsCount++
		p.log(ctx, run, models.LogLevelError, fmt.Sprintf("Index upload failed: %v", err))
	}

	if run.Status == models.RunStatusRunning {
		run.Status = models.RunStatusCompleted
	}
	p.finish(ctx, run)
	observability.RunsTotal.Inc()

	p.log(ctx, run, models.LogLevelInfo, fmt.Sprintf("Harvest %s: %d pages, %d summaries, %d published", run.Status, run.PagesFetched, run.SummariesFound, run.Enriched))
	return nil
}

func (p *Pipeline) finish(ctx context.Context, run *models.HarvestRun) {
	now := time.Now()
	run.FinishedAt = &now
	if err := p.journal.UpdateRun(ctx, run); err != nil {
		log.Printf("Warning: failed to journal run finish: %v", err)
	}
}

func (p *Pipeline) log(ctx context.Context, run *models.HarvestRun, level models.LogLevel, message string) {
	log.Printf("[%s] %s", level, message)
	if err := p.journal.Log(ctx, run.ID, level, message); err != nil {
		log.Printf("Warning: failed to journal log line: %v", err)
	}
}
