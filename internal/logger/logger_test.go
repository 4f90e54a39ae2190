package logger

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var buf strings.Builder
	l := New(LevelInfo, &buf)

	l.Debug("below threshold", nil)
	if buf.Len() != 0 {
		t.Error("debug message should be discarded at INFO level")
	}

	l.Info("scraped guide", Fields{"showings": 42})
	if buf.Len() == 0 {
		t.Fatal("info message should be logged")
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("log output should be JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got %q", entry.Level)
	}
	if entry.Message != "scraped guide" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
	if entry.Fields["showings"].(float64) != 42 {
		t.Errorf("expected showings field, got %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestLoggerError(t *testing.T) {
	var buf strings.Builder
	l := New(LevelInfo, &buf)

	l.Error("lookup failed", Fields{"title": "Dune"}, errors.New("boom"))

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("log output should be JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("expected error field 'boom', got %q", entry.Error)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("scores.fetched")
	m.IncrCounter("scores.fetched")
	m.AddCounter("showings.scraped", 10)
	m.RecordTiming("scrape.fetch", 100*time.Millisecond)
	m.RecordTiming("scrape.fetch", 300*time.Millisecond)

	snap := m.GetSnapshot()

	counters := snap["counters"].(map[string]int64)
	if counters["scores.fetched"] != 2 {
		t.Errorf("expected counter 2, got %d", counters["scores.fetched"])
	}
	if counters["showings.scraped"] != 10 {
		t.Errorf("expected counter 10, got %d", counters["showings.scraped"])
	}

	timings := snap["timings"].(map[string]map[string]interface{})
	fetch, ok := timings["scrape.fetch"]
	if !ok {
		t.Fatal("expected scrape.fetch timing stats")
	}
	if fetch["count"].(int) != 2 {
		t.Errorf("expected 2 timing samples, got %v", fetch["count"])
	}
	if fetch["average"].(string) != "200ms" {
		t.Errorf("expected average 200ms, got %v", fetch["average"])
	}
}
