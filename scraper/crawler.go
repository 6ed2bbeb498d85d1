package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"mls_harvester/extract"
	"mls_harvester/fetch"
	"mls_harvester/models"
)

// inactiveMarkers are the status substrings that mark the boundary between
// the active listings and everything older. Matching is case-insensitive.
var inactiveMarkers = []string{"not active", "inactive", "sold", "pending"}

// Crawler walks result pages in order, one at a time, extracting a summary
// per listing card. It stops on an empty page, on the first page containing
// an inactive listing (that page's listings are still kept), or at the page
// cap.
type Crawler struct {
	fetcher   *fetch.Fetcher
	extractor *extract.SummaryExtractor
	baseURL   string
	maxPages  int
	pageDelay time.Duration
}

func NewCrawler(fetcher *fetch.Fetcher, extractor *extract.SummaryExtractor, baseURL string, maxPages int, pageDelay time.Duration) *Crawler {
	if maxPages <= 0 {
		maxPages = 20
	}
	return &Crawler{
		fetcher:   fetcher,
		extractor: extractor,
		baseURL:   baseURL,
		maxPages:  maxPages,
		pageDelay: pageDelay,
	}
}

// Crawl returns the accumulated summaries oldest-page-first in on-page
// order, plus the number of pages fetched. A page failure halts the crawl
// and returns whatever was accumulated together with the error; the caller
// decides whether partial results are acceptable.
func (c *Crawler) Crawl(ctx context.Context) ([]models.ListingSummary, int, error) {
	var all []models.ListingSummary
	pages := 0

	for page := 1; page <= c.maxPages; page++ {
		doc, err := c.fetcher.Get(ctx, c.pageURL(page))
		if err != nil {
			log.Printf("Crawl: page %d failed, keeping %d listings: %v", page, len(all), err)
			return all, pages, fmt.Errorf("page %d: %w", page, err)
		}
		pages++

		stop := false
		cards := doc.Find(".listingCardCon")
		if cards.Length() == 0 {
			log.Printf("Crawl: page %d has no listings, stopping", page)
			stop = true
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			summary := c.extractor.Extract(card)
			all = append(all, summary)
			if isInactive(summary.Status) {
				stop = true
			}
		})

		if stop {
			break
		}

		log.Printf("Crawl: page %d: %d listings (total: %d)", page, cards.Length(), len(all))

		if page < c.maxPages {
			select {
			case <-time.After(c.pageDelay):
			case <-ctx.Done():
				return all, pages, ctx.Err()
			}
		}
	}

	return all, pages, nil
}

func (c *Crawler) pageURL(page int) string {
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pg=%d", c.baseURL, sep, page)
}

func isInactive(status string) bool {
	lowered := strings.ToLower(status)
	for _, marker := range inactiveMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
