package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mls_harvester/fetch"
	"mls_harvester/models"
)

func detailHTML(year int) string {
	return fmt.Sprintf(`<html><body>
		<div id="detailedInfoCon">Lovely home.
General Info:
Year built: %d
</div></body></html>`, year)
}

func TestEnrich_IsolatesIndividualFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fail") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var n int
		fmt.Sscanf(r.URL.Path, "/detail/%d", &n)
		fmt.Fprint(w, detailHTML(1990+n))
	}))
	defer srv.Close()

	summaries := make([]models.ListingSummary, 10)
	for i := range summaries {
		summaries[i] = models.ListingSummary{
			ID:        fmt.Sprintf("L%d", i),
			DetailURL: fmt.Sprintf("%s/detail/%d", srv.URL, i),
		}
	}
	// One permanently failing detail page.
	summaries[4].DetailURL = srv.URL + "/detail/fail"

	enricher := NewEnricher(fetch.New(srv.Client(), 2, 0), 5, 0)
	enriched := enricher.Enrich(context.Background(), summaries)

	if len(enriched) != 9 {
		t.Fatalf("expected 9 enriched listings, got %d", len(enriched))
	}

	// Input order is preserved and the failed record is the only one missing.
	wantIDs := []string{"L0", "L1", "L2", "L3", "L5", "L6", "L7", "L8", "L9"}
	for i, want := range wantIDs {
		if enriched[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, enriched[i].ID)
		}
		if enriched[i].DetailedInfo == nil {
			t.Fatalf("published record %s has no detail info", enriched[i].ID)
		}
	}

	// Sibling content is unaffected by the failure.
	if got := enriched[3].DetailedInfo.Features.YearBuilt; got == nil || *got != 1993 {
		t.Fatalf("expected L3 year built 1993, got %v", got)
	}
	if got := enriched[4].DetailedInfo.Features.YearBuilt; got == nil || *got != 1995 {
		t.Fatalf("expected L5 year built 1995, got %v", got)
	}
}

func TestEnrich_FallsBackToWholeDocumentText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Year built: 2010</p></body></html>")
	}))
	defer srv.Close()

	summaries := []models.ListingSummary{{ID: "L1", DetailURL: srv.URL}}
	enriched := NewEnricher(fetch.New(srv.Client(), 1, 0), 2, 0).Enrich(context.Background(), summaries)

	if len(enriched) != 1 {
		t.Fatalf("expected 1 enriched listing, got %d", len(enriched))
	}
	if got := enriched[0].DetailedInfo.Features.YearBuilt; got == nil || *got != 2010 {
		t.Fatalf("expected year built parsed from whole document, got %v", got)
	}
}

func TestEnrich_EmptyInput(t *testing.T) {
	enricher := NewEnricher(fetch.New(http.DefaultClient, 1, 0), 4, 0)
	enriched := enricher.Enrich(context.Background(), nil)
	if len(enriched) != 0 {
		t.Fatalf("expected no output for no input, got %d", len(enriched))
	}
}
