// Package storage provides JSON-based persistence for the showtimes guide.
//
// The storage package manages the guide file that is the pipeline's sole
// durable store. The file is fully rewritten each run via an atomic
// temp-file-and-rename, so a crashed run never leaves a half-written guide
// behind. Score records are merged into showings by cleaned title.
package storage
