package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mls_harvester/models"
)

// WriteSnapshot writes the run's dataset as a pretty-printed JSON array
// named with the run's calendar date, e.g. listings2026-08-25.json, and
// returns the file path. An empty dataset still produces a [] document.
func WriteSnapshot(dir string, date time.Time, listings []models.EnrichedListing) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if listings == nil {
		listings = []models.EnrichedListing{}
	}

	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal listings: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("listings%s.json", date.Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}
