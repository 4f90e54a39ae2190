// Package cli implements the command-line interface for cinema-times.
//
// The cli package provides the Cobra-based CLI that runs the full pipeline:
// scrape the cinema guide, clean titles, look up scores, merge, and write the
// JSON guide plus the optional iCal feed and HTML viewer. It coordinates the
// scraper, titles, ratings, storage, calendar and site packages and reports a
// run summary in text or JSON.
package cli
