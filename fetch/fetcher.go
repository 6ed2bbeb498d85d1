package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher performs a single GET with a bounded retry budget and a fixed
// (non-growing) delay between attempts. Every failure is retried the same
// way; there is no retryable/fatal classification.
type Fetcher struct {
	client      *http.Client
	maxAttempts int
	delay       time.Duration
}

func New(client *http.Client, maxAttempts int, delay time.Duration) *Fetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Fetcher{
		client:      client,
		maxAttempts: maxAttempts,
		delay:       delay,
	}
}

// Get fetches url and parses the response body as an HTML document. On the
// final attempt's failure the underlying error is propagated with attempt
// context.
func (f *Fetcher) Get(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		doc, err := f.get(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt < f.maxAttempts {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("fetch %s: %d attempts: %w", url, f.maxAttempts, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Browser-identifying headers reduce blocking by the origin.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-CA,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return doc, nil
}
