// Package calendar generates iCalendar feeds for cinema showings.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/cinema-times/internal/showing"
)

// DefaultDuration is assumed when a showing carries no parseable runtime
const DefaultDuration = 2 * time.Hour

// GenerateICS generates an iCalendar (.ics) document with one VEVENT per
// showing. Showings whose date or time cannot be parsed are skipped; the
// count of emitted events is returned alongside the document.
func GenerateICS(showings []*showing.Showing) (string, int) {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Cinema Times//cinema-times//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Cinema Times\r\n")
	ics.WriteString("X-WR-CALDESC:Movie showtimes from local cinema\r\n")

	count := 0
	now := time.Now().UTC()
	for _, sh := range showings {
		start := sh.StartTime()
		if start.IsZero() {
			continue
		}
		writeEvent(&ics, sh, start, now)
		count++
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String(), count
}

// writeEvent emits a single VEVENT
func writeEvent(ics *strings.Builder, sh *showing.Showing, start, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@cinema-times\r\n", sh.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))

	duration := showing.ParseRuntime(sh.Runtime)
	if duration <= 0 {
		duration = DefaultDuration
	}
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(duration))))

	summary := fmt.Sprintf("%s - %s", sh.Title, sh.Cinema)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description(sh))))
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(sh.Cinema)))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// description builds the event body from whatever showing details are present
func description(sh *showing.Showing) string {
	lines := []string{
		fmt.Sprintf("Movie: %s", sh.Title),
		fmt.Sprintf("Cinema: %s", sh.Cinema),
	}
	if sh.Runtime != "" {
		lines = append(lines, fmt.Sprintf("Runtime: %s", sh.Runtime))
	}
	if sh.Cert != "" {
		lines = append(lines, fmt.Sprintf("Cert: %s", sh.Cert))
	}
	if sh.Format != "" {
		lines = append(lines, fmt.Sprintf("Format: %s", sh.Format))
	}
	if sh.Screen != "" {
		lines = append(lines, fmt.Sprintf("Screen: %s", sh.Screen))
	}
	if sh.HasScore {
		lines = append(lines, fmt.Sprintf("Composite score: %.1f", sh.CompositeScore))
	}
	return strings.Join(lines, "\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
