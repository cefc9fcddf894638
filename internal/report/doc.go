// Package report renders the per-broadcast output tables as CSV.
//
// Every table starts with a UTF-8 byte order mark so spreadsheet tools pick
// the right encoding for non-ASCII transcripts. Files are rendered in memory
// and written with atomic renames.
package report
