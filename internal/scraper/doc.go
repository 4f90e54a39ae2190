// Package scraper provides HTTP fetching and HTML parsing for cinema showtimes.
//
// The scraper fetches a cinema's public guide page and extracts showings. It
// prefers the __guideData JSON blob embedded in the page's script tags, which
// carries the full week of sessions, and falls back to heuristic HTML parsing
// (single day only) when the blob is absent or malformed. Sold-out and
// unavailable sessions are skipped.
package scraper
