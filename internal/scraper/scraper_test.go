package scraper

import (
	"os"
	"strings"
	"testing"

	"github.com/pfrederiksen/cinema-times/internal/showing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestParseShowingsGuideData(t *testing.T) {
	s := New(DefaultGuideURL, "The Light Sheffield")

	showings, err := s.parseShowings(strings.NewReader(loadFixture(t, "guide_page.html")))
	if err != nil {
		t.Fatalf("parseShowings failed: %v", err)
	}

	// 5 sessions in the fixture, one soldout and one unavailable
	if len(showings) != 4 {
		t.Fatalf("expected 4 showings, got %d", len(showings))
	}

	byTitle := make(map[string]int)
	for _, sh := range showings {
		byTitle[sh.RawTitle]++

		if sh.Source != showing.SourceGuideData {
			t.Errorf("expected source %q, got %q", showing.SourceGuideData, sh.Source)
		}
		if sh.ID == "" {
			t.Error("showing ID should not be empty")
		}
		if sh.Cinema != "The Light Sheffield" {
			t.Errorf("expected cinema 'The Light Sheffield', got %q", sh.Cinema)
		}
	}

	if byTitle["Dune: Part Two"] != 3 {
		t.Errorf("expected 3 Dune showings, got %d", byTitle["Dune: Part Two"])
	}
	if byTitle["Jaws (50th Anniversary)"] != 1 {
		t.Errorf("expected 1 Jaws showing, got %d", byTitle["Jaws (50th Anniversary)"])
	}

	// Guide date keys become YYYY-MM-DD
	found := false
	for _, sh := range showings {
		if sh.Date == "2026-03-16" && sh.Time == "18:00" {
			found = true
			if sh.Runtime != "2h 46m" {
				t.Errorf("expected runtime '2h 46m', got %q", sh.Runtime)
			}
		}
	}
	if !found {
		t.Error("expected Monday 18:00 showing to be present")
	}
}

func TestParseShowingsHTMLFallback(t *testing.T) {
	s := New(DefaultGuideURL, "The Light Sheffield")

	showings, err := s.parseShowings(strings.NewReader(loadFixture(t, "html_fallback.html")))
	if err != nil {
		t.Fatalf("parseShowings failed: %v", err)
	}

	if len(showings) != 3 {
		t.Fatalf("expected 3 showings, got %d", len(showings))
	}

	titles := make(map[string]bool)
	times := make(map[string]bool)
	for _, sh := range showings {
		titles[sh.RawTitle] = true
		times[sh.Time] = true

		if sh.Source != showing.SourceHTML {
			t.Errorf("expected source %q, got %q", showing.SourceHTML, sh.Source)
		}
	}

	if !titles["Dune: Part Two"] || !titles["The Godfather"] {
		t.Errorf("expected both film titles, got %v", titles)
	}
	if titles["Stay in touch with our newsletter"] {
		t.Error("marketing containers should be excluded")
	}

	// Dotted time is normalized
	if !times["20:15"] {
		t.Errorf("expected dotted time to normalize to 20:15, got %v", times)
	}
}

func TestScanJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"simple", `[1, 2, 3]; var x = 1`, `[1, 2, 3]`, true},
		{"nested", `[[1], [2]]]`, `[[1], [2]]`, true},
		{"brackets in strings", `["a]b", "c[d"] tail`, `["a]b", "c[d"]`, true},
		{"escaped quotes", `["say \"hi]\""] tail`, `["say \"hi]\""]`, true},
		{"unterminated", `[1, 2`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scanJSONArray(tt.input)
			if ok != tt.ok {
				t.Fatalf("scanJSONArray(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("scanJSONArray(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGuideSessionAvailable(t *testing.T) {
	tests := []struct {
		cssClass string
		expected bool
	}{
		{"session available", true},
		{"session soldout", false},
		{"session SoldOut", false},
		{"session unavailable", false},
		{"", true},
	}

	for _, tt := range tests {
		gs := &GuideSession{CssClass: tt.cssClass}
		if got := gs.Available(); got != tt.expected {
			t.Errorf("Available() with class %q = %v, expected %v", tt.cssClass, got, tt.expected)
		}
	}
}
