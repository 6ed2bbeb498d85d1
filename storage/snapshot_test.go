package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mls_harvester/models"
)

func TestWriteSnapshot_DateNamedFile(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	listings := []models.EnrichedListing{
		{
			ListingSummary: models.ListingSummary{ID: "L1", Status: "Active"},
			DetailedInfo:   &models.DetailedInfo{Description: "Nice place"},
		},
	}

	path, err := WriteSnapshot(dir, date, listings)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if filepath.Base(path) != "listings2026-08-25.json" {
		t.Fatalf("unexpected snapshot name %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	// Pretty-printed array.
	if !strings.HasPrefix(string(data), "[\n") {
		t.Fatalf("expected indented JSON array, got %q", string(data[:20]))
	}

	var decoded []models.EnrichedListing
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "L1" {
		t.Fatalf("unexpected decoded content %+v", decoded)
	}
	if decoded[0].DetailedInfo == nil || decoded[0].DetailedInfo.Description != "Nice place" {
		t.Fatalf("expected detail info round-tripped, got %+v", decoded[0].DetailedInfo)
	}
}

func TestWriteSnapshot_EmptyDatasetIsArray(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSnapshot(dir, time.Now(), nil)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array document, got %q", string(data))
	}
}

func TestWriteSnapshot_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	if _, err := WriteSnapshot(dir, time.Now(), nil); err != nil {
		t.Fatalf("expected output dir created, got %v", err)
	}
}
