package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/cinema-times/internal/ratings"
	"github.com/pfrederiksen/cinema-times/internal/showing"
)

// Guide is the output document: all showings for a cinema plus metadata
type Guide struct {
	LastUpdated string             `json:"last_updated"` // RFC3339
	Cinema      string             `json:"cinema"`
	SourceURL   string             `json:"source_url,omitempty"`
	Showings    []*showing.Showing `json:"showings"`
}

// NewGuide creates a guide for a cinema with no showings yet
func NewGuide(cinema, sourceURL string) *Guide {
	return &Guide{
		Cinema:    cinema,
		SourceURL: sourceURL,
		Showings:  make([]*showing.Showing, 0),
	}
}

// MergeScores applies score records to every showing whose cleaned title
// matches, returning the number of showings updated
func (g *Guide) MergeScores(records map[string]*ratings.ScoreRecord) int {
	updated := 0
	for _, sh := range g.Showings {
		rec, ok := records[strings.ToLower(sh.Title)]
		if !ok {
			continue
		}
		sh.RTScore = rec.RTScore
		sh.MetacriticScore = rec.MetacriticScore
		sh.IMDBRating = rec.IMDBRating
		sh.CompositeScore = rec.CompositeScore
		sh.HasScore = rec.HasScore
		sh.ScoreSources = rec.Sources
		updated++
	}
	return updated
}

// UniqueTitles returns the distinct cleaned titles across all showings,
// in first-seen order
func (g *Guide) UniqueTitles() []string {
	seen := make(map[string]bool)
	titles := make([]string, 0)
	for _, sh := range g.Showings {
		if sh.Title == "" {
			continue
		}
		key := strings.ToLower(sh.Title)
		if !seen[key] {
			seen[key] = true
			titles = append(titles, sh.Title)
		}
	}
	return titles
}

// Storage handles persistence of the guide file
type Storage struct {
	path string
}

// New creates a Storage for the given guide file path
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	return &Storage{path: path}, nil
}

// Path returns the resolved guide file path
func (s *Storage) Path() string {
	return s.path
}

// Load reads the guide from disk. A missing file returns an empty guide.
func (s *Storage) Load() (*Guide, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewGuide("", ""), nil
		}
		return nil, fmt.Errorf("reading guide: %w", err)
	}

	var guide Guide
	if err := json.Unmarshal(data, &guide); err != nil {
		return nil, fmt.Errorf("parsing guide: %w", err)
	}

	if guide.Showings == nil {
		guide.Showings = make([]*showing.Showing, 0)
	}

	return &guide, nil
}

// Save writes the guide to disk atomically: the document is written to a
// temp file in the same directory and renamed into place
func (s *Storage) Save(guide *Guide) error {
	guide.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding guide: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".guide-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing guide: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing guide: %w", err)
	}

	return os.Chmod(s.path, 0644)
}
