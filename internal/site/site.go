// Package site renders the static HTML viewer for the showtimes guide.
package site

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pfrederiksen/cinema-times/internal/showing"
	"github.com/pfrederiksen/cinema-times/internal/storage"
)

// day groups a date's showings for the template
type day struct {
	Date     string
	Display  string
	Showings []*showing.Showing
}

type pageData struct {
	Cinema      string
	GeneratedAt string
	Days        []day
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Cinema}} — Cinema Times</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 48rem; padding: 0 1rem; color: #222; }
    h1 { font-size: 1.5rem; }
    h2 { font-size: 1.1rem; border-bottom: 1px solid #ddd; padding-bottom: .25rem; margin-top: 2rem; }
    .showing { display: flex; justify-content: space-between; padding: .4rem 0; }
    .score { background: #2a6e3f; color: #fff; border-radius: .25rem; padding: 0 .4rem; margin-left: .5rem; }
    .meta { color: #777; font-size: .85rem; }
    footer { margin-top: 3rem; color: #999; font-size: .8rem; }
  </style>
</head>
<body>
  <h1>{{.Cinema}}</h1>
{{range .Days}}  <h2>{{.Display}}</h2>
{{range .Showings}}  <div class="showing">
    <span>{{.Time}} — {{.Title}}{{if .HasScore}}<span class="score">{{printf "%.1f" .CompositeScore}}</span>{{end}}</span>
    <span class="meta">{{if .Screen}}{{.Screen}}{{end}}{{if .Cert}} ({{.Cert}}){{end}}</span>
  </div>
{{end}}{{end}}  <footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>
`))

// Render writes the HTML viewer for a guide to w
func Render(w io.Writer, guide *storage.Guide) error {
	data := pageData{
		Cinema:      guide.Cinema,
		GeneratedAt: time.Now().UTC().Format(time.RFC1123),
		Days:        groupByDate(guide.Showings),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// WriteFile renders the viewer to a file
func WriteFile(path string, guide *storage.Guide) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	return Render(f, guide)
}

// groupByDate buckets showings by date, each day sorted by start time
func groupByDate(showings []*showing.Showing) []day {
	byDate := make(map[string][]*showing.Showing)
	display := make(map[string]string)

	for _, sh := range showings {
		byDate[sh.Date] = append(byDate[sh.Date], sh)
		if sh.DateDisplay != "" {
			display[sh.Date] = sh.DateDisplay
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]day, 0, len(dates))
	for _, d := range dates {
		shs := byDate[d]
		sort.Slice(shs, func(i, j int) bool {
			if shs[i].Time != shs[j].Time {
				return shs[i].Time < shs[j].Time
			}
			return shs[i].Title < shs[j].Title
		})

		label := display[d]
		if label == "" {
			label = d
		}
		days = append(days, day{Date: d, Display: label, Showings: shs})
	}
	return days
}
