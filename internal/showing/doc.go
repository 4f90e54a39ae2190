// Package showing provides types and functions for cinema showings.
//
// The showing package handles showing representation and identification. Each
// showing is assigned a deterministic SHA1-based ID generated from its cinema,
// raw title, date and time, enabling reliable de-duplication and stable
// calendar UIDs across runs.
package showing
