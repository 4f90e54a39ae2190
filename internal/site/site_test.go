package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/cinema-times/internal/showing"
	"github.com/pfrederiksen/cinema-times/internal/storage"
)

func testGuide() *storage.Guide {
	g := storage.NewGuide("The Light Sheffield", "")
	g.Showings = []*showing.Showing{
		{Title: "Dune: Part Two", Date: "2026-03-16", DateDisplay: "Mon 16 Mar", Time: "18:00"},
		{Title: "Jaws", Date: "2026-03-15", DateDisplay: "Sun 15 Mar", Time: "20:30",
			HasScore: true, CompositeScore: 86.5, Cert: "12A"},
		{Title: "Dune: Part Two", Date: "2026-03-15", DateDisplay: "Sun 15 Mar", Time: "14:30"},
	}
	return g
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, testGuide()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := sb.String()

	for _, want := range []string{
		"The Light Sheffield",
		"Sun 15 Mar",
		"Mon 16 Mar",
		"Dune: Part Two",
		"Jaws",
		"86.5",
		"(12A)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	// Days sorted: Sunday before Monday
	if strings.Index(html, "Sun 15 Mar") > strings.Index(html, "Mon 16 Mar") {
		t.Error("expected days in chronological order")
	}
	// Within Sunday, 14:30 before 20:30
	if strings.Index(html, "14:30") > strings.Index(html, "20:30") {
		t.Error("expected showings sorted by time within a day")
	}
}

func TestRenderEscapesTitles(t *testing.T) {
	g := storage.NewGuide("Cinema", "")
	g.Showings = []*showing.Showing{
		{Title: "<script>alert(1)</script>", Date: "2026-03-15", Time: "19:00"},
	}

	var sb strings.Builder
	if err := Render(&sb, g); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(sb.String(), "<script>alert(1)</script>") {
		t.Error("titles must be HTML-escaped")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	if err := WriteFile(path, testGuide()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("expected a full HTML document")
	}
}
