package ratings

import "time"

// ScoreRecord holds the scores fetched for a single cleaned title.
// Zero-valued source fields mean the source was absent for that movie.
// A record with HasScore false is a cached negative result.
type ScoreRecord struct {
	Title           string    `json:"title"`
	RTScore         int       `json:"rt_critics_score,omitempty"`
	MetacriticScore int       `json:"metacritic_score,omitempty"`
	IMDBRating      float64   `json:"imdb_rating,omitempty"`
	CompositeScore  float64   `json:"composite_score,omitempty"`
	HasScore        bool      `json:"has_score"`
	Sources         []string  `json:"available_scores,omitempty"`
	MatchedTitle    string    `json:"matched_title,omitempty"`
	Year            string    `json:"year,omitempty"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// newRecord builds a ScoreRecord from raw source scores, computing the
// composite and the list of contributing sources
func newRecord(title string, rt, metacritic int, imdbRating float64, matchedTitle, year string) *ScoreRecord {
	rec := &ScoreRecord{
		Title:           title,
		RTScore:         rt,
		MetacriticScore: metacritic,
		IMDBRating:      imdbRating,
		MatchedTitle:    matchedTitle,
		Year:            year,
		FetchedAt:       time.Now().UTC(),
	}

	if rt > 0 {
		rec.Sources = append(rec.Sources, "RT")
	}
	if metacritic > 0 {
		rec.Sources = append(rec.Sources, "MC")
	}
	if imdbRating > 0 {
		rec.Sources = append(rec.Sources, "IMDb")
	}

	rec.CompositeScore, rec.HasScore = Composite(rt, metacritic, imdbRating)
	return rec
}

// negativeRecord marks a title as looked-up-and-missing so subsequent runs
// don't repeat the lookup
func negativeRecord(title string) *ScoreRecord {
	return &ScoreRecord{
		Title:     title,
		FetchedAt: time.Now().UTC(),
	}
}
