// Package textutil normalizes transcript text read from segment tables and
// SRT files.
//
// Text is NFC-normalized, control characters are dropped and runs of
// whitespace collapse to a single space. Placeholder markers written by
// upstream tooling for missing values ("nan", "None") normalize to the empty
// string.
package textutil
