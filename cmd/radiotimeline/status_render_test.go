package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("DJ", statusError, "none", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "DJ:", "[ERROR] none")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("DJ", statusOK, "SPEAKER_00", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestSpeakerLines(t *testing.T) {
	lines := speakerLines("", "", false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[WARN] none") {
		t.Fatalf("expected warning for missing DJ, got %q", lines[0])
	}
	lines = speakerLines("SPEAKER_00", "SPEAKER_01", false)
	if !strings.Contains(lines[1], "[OK] SPEAKER_01") {
		t.Fatalf("expected guest line, got %q", lines[1])
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{0: "0:00:00", 59.6: "0:01:00", 3725: "1:02:05"}
	for in, want := range cases {
		if got := formatClock(in); got != want {
			t.Fatalf("formatClock(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPreviewTruncatesRunes(t *testing.T) {
	if got := preview("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := preview("ééééééé", 4); got != "ééé…" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestTableViewEmpty(t *testing.T) {
	v := tableView{headers: []string{"A"}, empty: "nothing"}
	if got := v.render(); got != "nothing" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
