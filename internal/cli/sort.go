package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/cinema-times/internal/showing"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTime  SortOrder = "time"
	SortByTitle SortOrder = "title"
)

// sortShowings sorts a slice of showings based on the specified sort order
func sortShowings(showings []*showing.Showing, sortOrder SortOrder) {
	switch sortOrder {
	case SortByTime:
		sort.Slice(showings, func(i, j int) bool {
			return compareByTime(showings[i], showings[j])
		})
	case SortByTitle:
		sort.Slice(showings, func(i, j int) bool {
			ti := strings.ToLower(showings[i].Title)
			tj := strings.ToLower(showings[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by start time
			return compareByTime(showings[i], showings[j])
		})
	}
}

// compareByTime compares two showings by their start time.
// Returns true if showing i should come before showing j.
func compareByTime(i, j *showing.Showing) bool {
	si := i.StartTime()
	sj := j.StartTime()

	// If both start times are valid, compare them
	if !si.IsZero() && !sj.IsZero() {
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return strings.ToLower(i.Title) < strings.ToLower(j.Title)
	}

	// If only one start time is valid, put the valid one first
	if !si.IsZero() {
		return true
	}
	if !sj.IsZero() {
		return false
	}

	// If neither has a valid start time, sort by date text then title
	if i.Date != j.Date {
		return i.Date < j.Date
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
