package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/cinema-times/internal/showing"
)

// GuideMovie mirrors one entry of the __guideData blob embedded in the
// guide page's script tags
type GuideMovie struct {
	Title   string      `json:"Title"`
	Cert    string      `json:"Cert"`
	Runtime string      `json:"Runtime"`
	Dates   []GuideDate `json:"Dates"`
}

// GuideDate holds one day's sessions for a movie
type GuideDate struct {
	Key      string         `json:"Key"` // YYYYMMDD
	Display  string         `json:"Display"`
	Sessions []GuideSession `json:"Sessions"`
}

// GuideSession is a single bookable showtime
type GuideSession struct {
	Display  string `json:"Display"` // e.g. "14:30"
	CssClass string `json:"CssClass"`
	Format   string `json:"Format"`
	Screen   string `json:"Screen"`
}

// Available reports whether a session can still be booked
func (gs *GuideSession) Available() bool {
	class := strings.ToLower(gs.CssClass)
	return !strings.Contains(class, "unavailable") && !strings.Contains(class, "soldout")
}

// extractGuideData locates the __guideData assignment in the page's script
// tags and unmarshals it
func extractGuideData(doc *goquery.Document) ([]GuideMovie, error) {
	var movies []GuideMovie
	var lastErr error

	doc.Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		script := sel.Text()
		if !strings.Contains(script, "__guideData") {
			return true
		}

		for _, prefix := range []string{"__guideData = ", "__guideData="} {
			start := strings.Index(script, prefix)
			if start == -1 {
				continue
			}
			start += len(prefix)

			raw, ok := scanJSONArray(script[start:])
			if !ok {
				lastErr = fmt.Errorf("unterminated guide data array")
				continue
			}

			if err := json.Unmarshal([]byte(raw), &movies); err != nil {
				lastErr = fmt.Errorf("decoding guide data: %w", err)
				continue
			}
			return false
		}
		return true
	})

	if len(movies) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("guide data not found")
	}
	return movies, nil
}

// scanJSONArray returns the balanced JSON array at the start of s. A simple
// semicolon search is not enough because session display strings may contain
// anything, so brackets are matched while honoring strings and escapes.
func scanJSONArray(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], true
				}
			}
		}
	}
	return "", false
}

// fromGuideData flattens guide movies into one showing per available session
func (s *Scraper) fromGuideData(movies []GuideMovie) []*showing.Showing {
	showings := make([]*showing.Showing, 0)

	for _, movie := range movies {
		for _, date := range movie.Dates {
			day := showing.ParseGuideDate(date.Key)

			for _, session := range date.Sessions {
				if !session.Available() {
					continue
				}

				sh := showing.New(s.cinema, movie.Title, day, session.Display, showing.SourceGuideData)
				sh.DateDisplay = date.Display
				sh.Cert = movie.Cert
				sh.Runtime = movie.Runtime
				sh.Format = session.Format
				sh.Screen = session.Screen
				sh.Availability = session.CssClass
				showings = append(showings, sh)
			}
		}
	}

	return showings
}
