package models

// ListingSummary is the compact record extracted from one card on a result
// page. It is immutable once produced; enrichment copies it into an
// EnrichedListing rather than mutating it.
type ListingSummary struct {
	ID             string         `json:"id"`
	DetailURL      string         `json:"detailUrl"`
	Price          Price          `json:"price"`
	Status         string         `json:"status"`
	Address        Address        `json:"address"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	CompactDetails CompactDetails `json:"compactDetails"`
}

type Price struct {
	Amount    *float64 `json:"amount"`
	Formatted string   `json:"formatted"`
}

// Address is the positional decomposition of the free-text address line.
// Street fields are the first three whitespace tokens, unchecked.
type Address struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	StreetType   string `json:"streetType"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Neighborhood string `json:"neighborhood"`
}

// CompactDetails holds whatever the dense summary blob yielded. Pointer
// fields distinguish "pattern did not match" from a zero value.
type CompactDetails struct {
	MLSNumber *string    `json:"mlsNumber,omitempty"`
	Bedrooms  *int       `json:"bedrooms,omitempty"`
	Bathrooms *int       `json:"bathrooms,omitempty"`
	FloorArea *FloorArea `json:"floorArea,omitempty"`
}

type FloorArea struct {
	SqFt int     `json:"sqft"`
	SqM  float64 `json:"sqm"`
}

// EnrichedListing is a summary plus its parsed detail page. A nil
// DetailedInfo means enrichment failed; such records never reach the
// published snapshot.
type EnrichedListing struct {
	ListingSummary
	DetailedInfo *DetailedInfo `json:"detailedInfo"`
}
