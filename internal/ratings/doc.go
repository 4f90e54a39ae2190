// Package ratings looks up movie scores against the OMDb API and aggregates
// them into a weighted composite.
//
// Lookups are keyed by cleaned title and cached across runs so the free API
// tier is not burned on titles that rarely change. Rotten Tomatoes, Metacritic
// and IMDb scores are extracted from the OMDb response; the composite is a
// weighted mean over whichever sources are present (RT weighted 3, Metacritic
// 2, IMDb 1). Titles with no usable score carry a sentinel instead of a zero.
package ratings
