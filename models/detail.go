package models

// DetailedInfo is the structured form of the detail page's free-text blob.
// Every field is best-effort; a missing marker leaves the field at its zero
// value (or nil) and never blocks the other fields.
type DetailedInfo struct {
	Description string   `json:"description"`
	Features    Features `json:"features"`
	Rooms       []Room   `json:"rooms"`
	Taxes       *Taxes   `json:"taxes,omitempty"`
	LotInfo     LotInfo  `json:"lotInfo"`
}

type Features struct {
	YearBuilt    *int     `json:"yearBuilt,omitempty"`
	Parking      []string `json:"parking"`
	Heating      []string `json:"heating"`
	Amenities    []string `json:"amenities"`
	Construction *string  `json:"construction,omitempty"`
}

// Room keeps the dimension strings raw (imperial, e.g. 20'6") rather than
// parsing them to numbers.
type Room struct {
	Floor      string     `json:"floor"`
	Type       string     `json:"type"`
	Dimensions Dimensions `json:"dimensions"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
}

// Taxes is only populated when both the amount and the year were present in
// the same match.
type Taxes struct {
	Amount float64 `json:"amount"`
	Year   int     `json:"year"`
}

type LotInfo struct {
	Area *FloorArea `json:"area,omitempty"`
}
