package extract

import (
	"regexp"
	"strings"

	"mls_harvester/models"
)

var (
	postalFirstRe  = regexp.MustCompile(`^[A-Za-z][0-9][A-Za-z]$`)
	postalSecondRe = regexp.MustCompile(`^[0-9][A-Za-z][0-9]$`)
	postalJoinedRe = regexp.MustCompile(`^[A-Za-z][0-9][A-Za-z][0-9][A-Za-z][0-9]$`)
)

// AddressParser decomposes a free-text address line positionally. The city
// allow-list should put multi-word names before their substrings so "North
// Vancouver" is not reported as "Vancouver".
type AddressParser struct {
	municipalities []string
}

func NewAddressParser(municipalities []string) *AddressParser {
	return &AddressParser{municipalities: municipalities}
}

func (p *AddressParser) Parse(line string) models.Address {
	tokens := strings.Fields(line)

	var addr models.Address
	if len(tokens) > 0 {
		addr.StreetNumber = tokens[0]
	}
	if len(tokens) > 1 {
		addr.StreetName = tokens[1]
	}
	if len(tokens) > 2 {
		addr.StreetType = tokens[2]
	}

	for _, city := range p.municipalities {
		if containsFold(line, city) {
			addr.City = city
			break
		}
	}

	// First postal-code shaped token (pair or joined six-char form) wins.
	// When none is found the neighborhood falls back to everything after
	// the street number, matching the original positional behavior.
	rest := 1
	for i, tok := range tokens {
		if postalFirstRe.MatchString(tok) && i+1 < len(tokens) && postalSecondRe.MatchString(tokens[i+1]) {
			addr.PostalCode = tok + " " + tokens[i+1]
			rest = i + 2
			break
		}
		if postalJoinedRe.MatchString(tok) {
			addr.PostalCode = tok
			rest = i + 1
			break
		}
	}

	if rest < len(tokens) {
		addr.Neighborhood = strings.Join(tokens[rest:], " ")
	}

	return addr
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
