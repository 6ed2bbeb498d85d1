package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"mls_harvester/config"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

func loadCard(t *testing.T, name string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(loadFixture(t, name)))
	if err != nil {
		t.Fatalf("failed to parse fixture %s: %v", name, err)
	}
	card := doc.Find(".listingCardCon").First()
	if card.Length() == 0 {
		t.Fatalf("fixture %s has no listing card", name)
	}
	return card
}

func newTestExtractor() *SummaryExtractor {
	return NewSummaryExtractor(NewAddressParser(config.DefaultMunicipalities))
}

func TestExtract_FullCard(t *testing.T) {
	summary := newTestExtractor().Extract(loadCard(t, "listing_card.html"))

	if summary.ID != "R2845123" {
		t.Fatalf("expected ID R2845123, got %q", summary.ID)
	}
	if summary.DetailURL != "https://www.example-mls.ca/listings/R2845123" {
		t.Fatalf("unexpected detail URL %q", summary.DetailURL)
	}
	if summary.Price.Formatted != "$1,234,500" {
		t.Fatalf("expected formatted price preserved, got %q", summary.Price.Formatted)
	}
	if summary.Price.Amount == nil || *summary.Price.Amount != 1234500 {
		t.Fatalf("expected amount 1234500, got %v", summary.Price.Amount)
	}
	if summary.Status != "Active" {
		t.Fatalf("expected status Active, got %q", summary.Status)
	}
	if summary.Address.City != "Burnaby" || summary.Address.PostalCode != "V5H 1A1" {
		t.Fatalf("unexpected address %+v", summary.Address)
	}
	if summary.ImageURL != "https://cdn.example-mls.ca/photos/R2845123_1.jpg" {
		t.Fatalf("expected lazy-load image preferred, got %q", summary.ImageURL)
	}

	details := summary.CompactDetails
	if details.MLSNumber == nil || *details.MLSNumber != "R2845123" {
		t.Fatalf("expected MLS R2845123, got %v", details.MLSNumber)
	}
	if details.Bedrooms == nil || *details.Bedrooms != 3 {
		t.Fatalf("expected 3 bedrooms, got %v", details.Bedrooms)
	}
	if details.Bathrooms == nil || *details.Bathrooms != 2 {
		t.Fatalf("expected 2 bathrooms, got %v", details.Bathrooms)
	}
	if details.FloorArea == nil {
		t.Fatal("expected floor area")
	}
	if details.FloorArea.SqFt != 1450 {
		t.Fatalf("expected 1450 sqft, got %d", details.FloorArea.SqFt)
	}
	if details.FloorArea.SqM != 134.7 {
		t.Fatalf("expected 134.7 sqm, got %v", details.FloorArea.SqM)
	}
}

func TestExtract_MinimalCard(t *testing.T) {
	summary := newTestExtractor().Extract(loadCard(t, "listing_card_minimal.html"))

	// ID falls back to the last path segment of the detail URL.
	if summary.ID != "R2999000" {
		t.Fatalf("expected ID from detail URL, got %q", summary.ID)
	}
	if summary.Status != "Sold" {
		t.Fatalf("expected status Sold, got %q", summary.Status)
	}
	if summary.Price.Amount != nil {
		t.Fatalf("expected nil amount for absent price, got %v", *summary.Price.Amount)
	}
	if summary.Price.Formatted != "" {
		t.Fatalf("expected empty formatted price, got %q", summary.Price.Formatted)
	}
	if summary.ImageURL != "" {
		t.Fatalf("expected no image URL, got %q", summary.ImageURL)
	}

	details := summary.CompactDetails
	if details.MLSNumber != nil || details.Bedrooms != nil || details.Bathrooms != nil || details.FloorArea != nil {
		t.Fatalf("expected all compact details omitted, got %+v", details)
	}
}

func TestParsePrice(t *testing.T) {
	price := parsePrice("$1,234,500")
	if price.Formatted != "$1,234,500" {
		t.Fatalf("expected formatted preserved verbatim, got %q", price.Formatted)
	}
	if price.Amount == nil || *price.Amount != 1234500 {
		t.Fatalf("expected amount 1234500, got %v", price.Amount)
	}

	price = parsePrice("Price on request")
	if price.Amount != nil {
		t.Fatalf("expected nil amount for unparseable price, got %v", *price.Amount)
	}
	if price.Formatted != "Price on request" {
		t.Fatalf("expected formatted preserved, got %q", price.Formatted)
	}
}
