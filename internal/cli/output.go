package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the run summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunSummary describes what a pipeline run produced
type RunSummary struct {
	ScrapedAt     time.Time `json:"scraped_at"`
	Cinema        string    `json:"cinema"`
	ShowingCount  int       `json:"showing_count"`
	UniqueTitles  int       `json:"unique_titles"`
	ScoredTitles  int       `json:"scored_titles"`
	MissingTitles int       `json:"missing_titles"`
	OutputPath    string    `json:"output_path"`
	ICalPath      string    `json:"ical_path,omitempty"`
	ICalEvents    int       `json:"ical_events,omitempty"`
	HTMLPath      string    `json:"html_path,omitempty"`
}

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, summary *RunSummary, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, summary *RunSummary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, summary *RunSummary, verbose bool) error {
	if summary.ShowingCount == 0 {
		fmt.Fprintln(w, "No showings found.")
		return nil
	}

	fmt.Fprintf(w, "%s: %d showings across %d films\n",
		summary.Cinema, summary.ShowingCount, summary.UniqueTitles)

	if summary.ScoredTitles > 0 || summary.MissingTitles > 0 {
		fmt.Fprintf(w, "Scores: %d films scored, %d without scores\n",
			summary.ScoredTitles, summary.MissingTitles)
	}

	fmt.Fprintf(w, "Wrote %s\n", summary.OutputPath)
	if summary.ICalPath != "" {
		fmt.Fprintf(w, "Wrote %s (%d events)\n", summary.ICalPath, summary.ICalEvents)
	}
	if summary.HTMLPath != "" {
		fmt.Fprintf(w, "Wrote %s\n", summary.HTMLPath)
	}

	if verbose {
		fmt.Fprintf(w, "Scraped at: %s\n", summary.ScrapedAt.Format(time.RFC3339))
	}

	return nil
}
