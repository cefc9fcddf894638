// Package timeline defines the typed broadcast timeline shared by every
// classification stage: transcript segments, diarization turns, speaker roles,
// per-segment labels and program blocks.
//
// Values are validated once at ingestion (see internal/ingest) so the
// classification packages can rely on well-formed enums and intervals instead
// of re-checking loosely typed rows at every decision point.
package timeline
