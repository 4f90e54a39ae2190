package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/cinema-times/internal/calendar"
	"github.com/pfrederiksen/cinema-times/internal/showing"
)

func main() {
	// Create a couple of sample showings
	showings := []*showing.Showing{
		showing.New("The Light Sheffield", "Dune: Part Two", "2026-03-15", "19:30", showing.SourceGuideData),
		showing.New("The Light Sheffield", "Jaws (50th Anniversary)", "2026-03-16", "20:00", showing.SourceGuideData),
	}
	showings[0].Runtime = "2h 46m"
	showings[0].Cert = "12A"
	showings[1].Title = "Jaws"
	showings[1].Format = "50th Anniversary"

	icsContent, count := calendar.GenerateICS(showings)

	filename := "preview-showings.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file with %d events: %s\n\n", count, filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
