package showing

import (
	"testing"
)

func TestGenerateID(t *testing.T) {
	id1 := GenerateID("The Light Sheffield", "Dune", "2026-03-15", "19:30")
	id2 := GenerateID("The Light Sheffield", "Dune", "2026-03-15", "19:30")

	if id1 != id2 {
		t.Errorf("GenerateID should be deterministic, got different IDs: %s vs %s", id1, id2)
	}

	if len(id1) != 40 { // SHA1 produces 40 hex characters
		t.Errorf("expected ID length of 40, got %d", len(id1))
	}

	other := GenerateID("The Light Sheffield", "Dune", "2026-03-15", "21:00")
	if id1 == other {
		t.Error("different showtimes should produce different IDs")
	}
}

func TestNew(t *testing.T) {
	s := New("The Light Sheffield", "Dune (IMAX)", "2026-03-15", "19:30", SourceGuideData)

	if s.ID == "" {
		t.Error("expected ID to be generated")
	}
	if s.Cinema != "The Light Sheffield" {
		t.Errorf("expected cinema 'The Light Sheffield', got '%s'", s.Cinema)
	}
	if s.RawTitle != "Dune (IMAX)" {
		t.Errorf("expected raw title to be preserved, got '%s'", s.RawTitle)
	}
	if s.Source != SourceGuideData {
		t.Errorf("expected source '%s', got '%s'", SourceGuideData, s.Source)
	}
}

func TestKey(t *testing.T) {
	a := New("Cinema", "Dune", "2026-03-15", "19:30", SourceHTML)
	b := New("Cinema", "DUNE", "2026-03-15", "19:30", SourceHTML)

	if a.Key() != b.Key() {
		t.Error("key should be case-insensitive on title")
	}

	c := New("Cinema", "Dune", "2026-03-16", "19:30", SourceHTML)
	if a.Key() == c.Key() {
		t.Error("different dates should produce different keys")
	}
}
