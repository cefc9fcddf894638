package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"radiotimeline/internal/config"
	"radiotimeline/internal/ingest"
	"radiotimeline/internal/timeline"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSegments writes the segment table for date into its day directory and
// returns the file path.
func WriteSegments(t testing.TB, cfg *config.Config, date string, segments []timeline.Segment) string {
	t.Helper()

	var buf bytes.Buffer
	if err := ingest.WriteSegments(&buf, segments); err != nil {
		t.Fatalf("render segments: %v", err)
	}
	path := filepath.Join(cfg.DayDir(date), date+".csv")
	WriteFile(t, path, buf.Bytes())
	return path
}

// WriteDiarization writes the diarization turn file for date and returns the
// file path.
func WriteDiarization(t testing.TB, cfg *config.Config, date string, turns []timeline.DiarizationTurn) string {
	t.Helper()

	var buf bytes.Buffer
	if err := ingest.WriteDiarization(&buf, turns); err != nil {
		t.Fatalf("render diarization: %v", err)
	}
	path := filepath.Join(cfg.DayDir(date), date+"_diarization.txt")
	WriteFile(t, path, buf.Bytes())
	return path
}

// WriteSRT writes raw SRT content for date and returns the file path.
func WriteSRT(t testing.TB, cfg *config.Config, date, content string) string {
	t.Helper()

	path := filepath.Join(cfg.DayDir(date), date+".srt")
	WriteFile(t, path, []byte(content))
	return path
}
