package scraper

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"mls_harvester/extract"
	"mls_harvester/fetch"
	"mls_harvester/models"
)

// Enricher fetches and parses the detail page for every summary through a
// bounded worker pool. Each worker writes into its own positional slot, so
// input order is preserved and no locking is needed.
type Enricher struct {
	fetcher *fetch.Fetcher
	workers int
	limiter *rate.Limiter
}

// NewEnricher builds an enricher with the given concurrency limit. A
// ratePerSec of 0 disables request throttling.
func NewEnricher(fetcher *fetch.Fetcher, workers, ratePerSec int) *Enricher {
	if workers <= 0 {
		workers = 8
	}
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return &Enricher{
		fetcher: fetcher,
		workers: workers,
		limiter: limiter,
	}
}

// Enrich returns only the records whose detail fetch and parse succeeded.
// An individual failure drops that record alone; siblings are unaffected.
func (e *Enricher) Enrich(ctx context.Context, summaries []models.ListingSummary) []models.EnrichedListing {
	results := make([]*models.DetailedInfo, len(summaries))

	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	for i, summary := range summaries {
		g.Go(func() error {
			info, err := e.enrichOne(ctx, summary.DetailURL)
			if err != nil {
				log.Printf("Enrich: dropping %s: %v", summary.ID, err)
				return nil
			}
			results[i] = info
			return nil
		})
	}
	g.Wait()

	enriched := make([]models.EnrichedListing, 0, len(summaries))
	for i, summary := range summaries {
		if results[i] == nil {
			continue
		}
		enriched = append(enriched, models.EnrichedListing{
			ListingSummary: summary,
			DetailedInfo:   results[i],
		})
	}

	return enriched
}

func (e *Enricher) enrichOne(ctx context.Context, detailURL string) (*models.DetailedInfo, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	doc, err := e.fetcher.Get(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	blob := doc.Find("#detailedInfoCon")
	text := blob.Text()
	if blob.Length() == 0 {
		text = doc.Text()
	}

	info := extract.ParseDetailText(text)
	return &info, nil
}
