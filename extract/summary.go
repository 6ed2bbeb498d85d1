package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"mls_harvester/models"
)

var (
	mlsRe   = regexp.MustCompile(`(?i)MLS®?\s*#?\s*:?\s*([A-Z0-9]+)`)
	bedsRe  = regexp.MustCompile(`(?i)(\d+)\s*bed`)
	bathsRe = regexp.MustCompile(`(?i)(\d+)\s*bath`)
	sqftRe  = regexp.MustCompile(`(?i)([\d,]+)\s*sq\.?\s*ft`)
	sqmRe   = regexp.MustCompile(`(?i)([\d,.]+)\s*(?:sq\.?\s*m|m²)`)
)

// SummaryExtractor turns one listing card into a ListingSummary. All field
// extractions are best-effort; a missing node leaves the field empty.
type SummaryExtractor struct {
	addresses *AddressParser
}

func NewSummaryExtractor(addresses *AddressParser) *SummaryExtractor {
	return &SummaryExtractor{addresses: addresses}
}

func (e *SummaryExtractor) Extract(card *goquery.Selection) models.ListingSummary {
	detailURL, _ := card.Find("a.listingCardDetailsLink").Attr("href")

	summary := models.ListingSummary{
		DetailURL: detailURL,
		Price:     parsePrice(strings.TrimSpace(card.Find(".listingCardPrice").Text())),
		Status:    strings.TrimSpace(card.Find(".listingCardStatus").Text()),
		Address:   e.addresses.Parse(strings.TrimSpace(card.Find(".listingCardAddress").Text())),
	}

	summary.ID = cardID(card, detailURL)

	// Prefer the lazy-load attribute; the eager src is usually a placeholder.
	img := card.Find(".listingCardImage img").First()
	if src, ok := img.Attr("data-src"); ok && src != "" {
		summary.ImageURL = src
	} else if src, ok := img.Attr("src"); ok {
		summary.ImageURL = src
	}

	summary.CompactDetails = parseCompactDetails(card.Find(".listingCardSummary").Text())

	return summary
}

func cardID(card *goquery.Selection, detailURL string) string {
	if id, ok := card.Attr("data-listing-id"); ok && id != "" {
		return id
	}
	// Fall back to the last path segment of the detail URL.
	trimmed := strings.TrimRight(detailURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

func parsePrice(text string) models.Price {
	price := models.Price{Formatted: text}

	cleaned := strings.NewReplacer("$", "", ",", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)
	if amount, err := strconv.ParseFloat(cleaned, 64); err == nil {
		price.Amount = &amount
	}

	return price
}

func parseCompactDetails(text string) models.CompactDetails {
	var details models.CompactDetails

	if m := mlsRe.FindStringSubmatch(text); m != nil {
		details.MLSNumber = &m[1]
	}
	if m := bedsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			details.Bedrooms = &n
		}
	}
	if m := bathsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			details.Bathrooms = &n
		}
	}

	var area models.FloorArea
	found := false
	if m := sqftRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			area.SqFt = n
			found = true
		}
	}
	if m := sqmRe.FindStringSubmatch(text); m != nil {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			area.SqM = f
			found = true
		}
	}
	if found {
		details.FloorArea = &area
	}

	return details
}
