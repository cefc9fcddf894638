// Package ingest reads the per-broadcast input artifacts: the transcript
// segment table, the diarization turn list and, as a fallback source for the
// segment table, SRT subtitle files.
//
// Readers are tolerant at row level. A malformed row is skipped and recorded
// as an Issue wrapping ErrMalformedRow; only unreadable or missing files are
// returned as errors. Parsed rows are checked with struct-tag validation
// before they are accepted.
package ingest
