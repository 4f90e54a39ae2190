package showing

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Source identifies which parsing strategy produced a showing
const (
	SourceGuideData = "guide_data"
	SourceHTML      = "html"
)

// Tag is a typed annotation stripped from a raw title, e.g. "(50th Anniversary)"
type Tag struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Showing represents a single screening of a film at a cinema
type Showing struct {
	ID           string `json:"id"`
	Cinema       string `json:"cinema"`
	Title        string `json:"title"`
	RawTitle     string `json:"raw_title,omitempty"`
	TitleTags    []Tag  `json:"title_tags,omitempty"`
	Date         string `json:"date"`         // YYYY-MM-DD
	Time         string `json:"time"`         // HH:MM
	DateDisplay  string `json:"date_display,omitempty"`
	Cert         string `json:"cert,omitempty"`
	Runtime      string `json:"runtime,omitempty"`
	Format       string `json:"format,omitempty"`
	Screen       string `json:"screen,omitempty"`
	Availability string `json:"availability,omitempty"`
	Source       string `json:"source"`

	// Score fields merged in from the ratings lookup
	RTScore         int      `json:"rt_critics_score,omitempty"`
	MetacriticScore int      `json:"metacritic_score,omitempty"`
	IMDBRating      float64  `json:"imdb_rating,omitempty"`
	CompositeScore  float64  `json:"composite_score,omitempty"`
	HasScore        bool     `json:"has_score"`
	ScoreSources    []string `json:"available_scores,omitempty"`
}

// GenerateID creates a deterministic ID for a showing based on stable fields
func GenerateID(cinema, rawTitle, date, timeStr string) string {
	h := sha1.New()
	h.Write([]byte(cinema + "|" + rawTitle + "|" + date + "|" + timeStr))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// New creates a new Showing with its ID populated
func New(cinema, rawTitle, date, timeStr, source string) *Showing {
	return &Showing{
		ID:       GenerateID(cinema, rawTitle, date, timeStr),
		Cinema:   cinema,
		RawTitle: rawTitle,
		Title:    rawTitle,
		Date:     date,
		Time:     timeStr,
		Source:   source,
	}
}

// Key returns the title+time+date de-duplication key for a showing
func (s *Showing) Key() string {
	return strings.ToLower(s.RawTitle) + "_" + s.Time + "_" + s.Date
}

// StartTime returns the showing's start as a time.Time, or the zero value
// if the date or time cannot be parsed.
func (s *Showing) StartTime() time.Time {
	return ParseShowtime(s.Date, s.Time)
}
