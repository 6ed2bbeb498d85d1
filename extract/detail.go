package extract

import (
	"regexp"
	"strconv"
	"strings"

	"mls_harvester/models"
)

const (
	documentsMarker   = "Documents & Links"
	generalInfoMarker = "General Info"
	roomsStartMarker  = "Room Information:"
	roomsEndMarker    = "Bathrooms:"
)

var (
	yearBuiltRe    = regexp.MustCompile(`(?im)^\s*Year built:\s*(\d{4})`)
	parkingRe      = regexp.MustCompile(`(?im)^\s*Parking:\s*(.+)$`)
	heatingRe      = regexp.MustCompile(`(?im)^\s*Heating:\s*(.+)$`)
	amenitiesRe    = regexp.MustCompile(`(?im)^\s*Amenities:\s*(.+)$`)
	constructionRe = regexp.MustCompile(`(?im)^\s*Construction:\s*(.+)$`)
	taxesRe        = regexp.MustCompile(`(?im)^\s*Taxes:\s*\$([\d,]+(?:\.\d+)?)\s*\((\d{4})\)`)
	lotAreaRe      = regexp.MustCompile(`(?im)^\s*Lot size:\s*([\d,]+)\s*sq\.?\s*ft\.?(?:\s*\(([\d,.]+)\s*(?:sq\.?\s*m\.?|m²)\))?`)
	roomLineRe     = regexp.MustCompile(`^(\S+)\s+(\S+(?:\s+\S+)?)\s+(\d+'(?:\d+")?)\s*[×x]\s*(\d+'(?:\d+")?)$`)
)

// ParseDetailText turns the detail page's free-text blob into structured
// sections. Every extractor is anchored and independent; a missing marker
// leaves its field empty and never blocks the others. The function is pure:
// identical input always yields deeply-equal output.
func ParseDetailText(text string) models.DetailedInfo {
	info := models.DetailedInfo{
		Description: parseDescription(text),
		Features: models.Features{
			Parking:   parseList(parkingRe, text),
			Heating:   parseList(heatingRe, text),
			Amenities: parseList(amenitiesRe, text),
		},
		Rooms: parseRooms(text),
	}

	if m := yearBuiltRe.FindStringSubmatch(text); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			info.Features.YearBuilt = &year
		}
	}
	if m := constructionRe.FindStringSubmatch(text); m != nil {
		construction := strings.TrimSpace(m[1])
		info.Features.Construction = &construction
	}
	info.Taxes = parseTaxes(text)
	info.LotInfo.Area = parseLotArea(text)

	return info
}

// parseDescription cuts the blob before the documents marker or the general
// info marker, whichever appears first; the whole blob if neither.
func parseDescription(text string) string {
	end := len(text)
	if idx := strings.Index(text, documentsMarker); idx >= 0 && idx < end {
		end = idx
	}
	if idx := strings.Index(text, generalInfoMarker); idx >= 0 && idx < end {
		end = idx
	}
	return strings.TrimSpace(text[:end])
}

func parseList(re *regexp.Regexp, text string) []string {
	result := []string{}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return result
	}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// parseRooms scans the line-oriented section between the room and bathroom
// markers. Lines that do not match the floor/type/dimensions shape are
// silently skipped.
func parseRooms(text string) []models.Room {
	start := strings.Index(text, roomsStartMarker)
	if start < 0 {
		return nil
	}
	section := text[start+len(roomsStartMarker):]
	if end := strings.Index(section, roomsEndMarker); end >= 0 {
		section = section[:end]
	}

	var rooms []models.Room
	for _, line := range strings.Split(section, "\n") {
		m := roomLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		rooms = append(rooms, models.Room{
			Floor: m[1],
			Type:  m[2],
			Dimensions: models.Dimensions{
				Length: m[3],
				Width:  m[4],
			},
		})
	}
	return rooms
}

// parseTaxes requires both the dollar amount and the 4-digit year in the
// same match; partial matches yield nothing.
func parseTaxes(text string) *models.Taxes {
	m := taxesRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	return &models.Taxes{Amount: amount, Year: year}
}

func parseLotArea(text string) *models.FloorArea {
	m := lotAreaRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	area := &models.FloorArea{}
	if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
		area.SqFt = n
	}
	if m[2] != "" {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64); err == nil {
			area.SqM = f
		}
	}
	return area
}
