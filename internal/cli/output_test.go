package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleSummary() *RunSummary {
	return &RunSummary{
		ScrapedAt:     time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC),
		Cinema:        "The Light Sheffield",
		ShowingCount:  42,
		UniqueTitles:  9,
		ScoredTitles:  7,
		MissingTitles: 2,
		OutputPath:    "cinema-times.json",
		ICalPath:      "cinema-times.ics",
		ICalEvents:    40,
	}
}

func TestWriteOutputText(t *testing.T) {
	var sb strings.Builder
	if err := WriteOutput(&sb, sampleSummary(), FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"42 showings across 9 films",
		"7 films scored, 2 without scores",
		"Wrote cinema-times.json",
		"Wrote cinema-times.ics (40 events)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q, got:\n%s", want, out)
		}
	}
}

func TestWriteOutputTextEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteOutput(&sb, &RunSummary{}, FormatText, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.Contains(sb.String(), "No showings found.") {
		t.Errorf("expected empty-run message, got: %s", sb.String())
	}
}

func TestWriteOutputJSON(t *testing.T) {
	var sb strings.Builder
	if err := WriteOutput(&sb, sampleSummary(), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	var decoded RunSummary
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("JSON output should round-trip: %v", err)
	}
	if decoded.ShowingCount != 42 {
		t.Errorf("expected showing count 42, got %d", decoded.ShowingCount)
	}
	if decoded.Cinema != "The Light Sheffield" {
		t.Errorf("unexpected cinema: %q", decoded.Cinema)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var sb strings.Builder
	if err := WriteOutput(&sb, sampleSummary(), OutputFormat("xml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}
