package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"radiotimeline/internal/roles"
	"radiotimeline/internal/timeline"
)

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(data, bom) {
		t.Fatalf("missing byte order mark: %q", data)
	}
	records, err := csv.NewReader(bytes.NewReader(data[len(bom):])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return records
}

func TestWriteRoles(t *testing.T) {
	stats := []roles.SpeakerStats{
		{Speaker: "SPEAKER_00", Role: timeline.RoleDJ, TotalDuration: 500.004, RatioToDJ: 1, Interactions: 0},
		{Speaker: "SPEAKER_07", Role: timeline.RoleGuest, TotalDuration: 40, RatioToDJ: 0.08, Interactions: 8},
	}
	var buf bytes.Buffer
	if err := WriteRoles(&buf, stats); err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		RolesHeader,
		{"SPEAKER_00", "DJ", "500", "100.0%", "0"},
		{"SPEAKER_07", "GUEST", "40", "8.0%", "8"},
	}
	if diff := cmp.Diff(want, readCSV(t, buf.Bytes())); diff != "" {
		t.Fatalf("roles table mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteLabeled(t *testing.T) {
	labeled := []timeline.LabeledSegment{
		{
			Segment: timeline.Segment{
				Start: 0, End: 2.5, Type: timeline.TypeSpeech, Transcript: "hello, world",
				Overlaps: []timeline.SpeakerOverlap{
					{Speaker: "A", Seconds: 2, Ratio: 0.8},
					{Speaker: "B", Seconds: 0.5, Ratio: 0.2},
				},
			},
			Label: timeline.LabelDJ,
		},
		{Segment: timeline.Segment{Start: 2.5, End: 3, Type: timeline.TypeSilence}, Label: timeline.LabelSilence},
	}
	var buf bytes.Buffer
	if err := WriteLabeled(&buf, labeled); err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		LabeledHeader,
		{"0", "2.5", "2.5", "speech", "hello, world", "A:2.00s(0.800);B:0.50s(0.200)", "A", "DJ"},
		{"2.5", "3", "0.5", "silence", "", "", "", "Silence"},
	}
	if diff := cmp.Diff(want, readCSV(t, buf.Bytes())); diff != "" {
		t.Fatalf("labeled table mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	paths := PathsFor(dir, "20240105")
	bundle := Bundle{
		Segments: []timeline.Segment{{Start: 0, End: 5, Type: timeline.TypeMusic}},
		Labeled:  []timeline.LabeledSegment{{Segment: timeline.Segment{Start: 0, End: 5, Type: timeline.TypeMusic}, Label: timeline.LabelMusic}},
		Blocks: []timeline.Block{{
			Type: timeline.BlockDJ, Start: 0, End: 12.346, Duration: 12.346, SegmentCount: 3,
			Speakers: []string{"A", "B"}, Text: "hi there",
		}},
	}
	if err := WriteAll(paths, bundle); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{paths.Enriched, paths.Roles, paths.Labeled, paths.Blocks} {
		if !strings.HasPrefix(filepath.Base(p), "20240105") {
			t.Fatalf("unexpected file name %s", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s: %v", p, err)
		}
	}

	data, err := os.ReadFile(paths.Blocks)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		BlocksHeader,
		{"DJ", "0", "12.35", "12.35", "3", "2", "A,B", "hi there"},
	}
	if diff := cmp.Diff(want, readCSV(t, data)); diff != "" {
		t.Fatalf("blocks table mismatch (-want +got):\n%s", diff)
	}

	data, err = os.ReadFile(paths.Roles)
	if err != nil {
		t.Fatal(err)
	}
	if got := readCSV(t, data); len(got) != 1 {
		t.Fatalf("empty role table should only hold the header, got %v", got)
	}
}

func TestWriteAllMissingDirectory(t *testing.T) {
	paths := PathsFor(filepath.Join(t.TempDir(), "missing"), "20240105")
	if err := WriteAll(paths, Bundle{}); err == nil {
		t.Fatal("expected error")
	}
}
