package ingest

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"radiotimeline/internal/timeline"
)

var floatOpt = cmpopts.EquateApprox(0, 1e-9)

func TestReadSegments(t *testing.T) {
	input := "\uFEFFStart Time,Stop Time,Duration,Type,MP3 File,Transcript File,Transcript\n" +
		"0,5.5,5.5,speech,a.mp3,a.txt,  hello   world \n" +
		"5.5,8,2.5,Speech,,,nan\n" +
		"8,9,,silence,,,\n" +
		"\n" +
		"9,abc,1,music,,,\n" +
		"10,9,1,music,,,\n" +
		"11,12,1,jingle,,,\n" +
		"-1,2,3,music,,,\n" +
		"12,70,58,music,,,la la\n"

	segs, issues, err := ReadSegments(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSegments: %v", err)
	}
	want := []timeline.Segment{
		{Start: 0, End: 5.5, Type: timeline.TypeSpeech, Transcript: "hello world"},
		{Start: 5.5, End: 8, Type: timeline.TypeSpeech},
		{Start: 8, End: 9, Type: timeline.TypeSilence},
		{Start: 12, End: 70, Type: timeline.TypeMusic, Transcript: "la la"},
	}
	if diff := cmp.Diff(want, segs, floatOpt); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}

	if issues.Len() != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", issues.Len(), issues)
	}
	lines := []int{issues[0].Line, issues[1].Line, issues[2].Line, issues[3].Line}
	if diff := cmp.Diff([]int{6, 7, 8, 9}, lines); diff != "" {
		t.Fatalf("issue lines mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(issues[0], ErrMalformedRow) || !errors.Is(issues.Err(), ErrMalformedRow) {
		t.Fatal("issues should wrap ErrMalformedRow")
	}
}

func TestReadSegmentsColumnOrderAndMissingColumns(t *testing.T) {
	input := "Transcript,Type,Stop Time,Start Time\nhi,speech,2,1\n"
	segs, issues, err := ReadSegments(strings.NewReader(input))
	if err != nil || issues.Len() != 0 {
		t.Fatalf("unexpected err=%v issues=%v", err, issues)
	}
	if len(segs) != 1 || segs[0].Start != 1 || segs[0].End != 2 || segs[0].Transcript != "hi" {
		t.Fatalf("unexpected segments %+v", segs)
	}

	if _, _, err := ReadSegments(strings.NewReader("Start Time,Type\n1,speech\n")); err == nil {
		t.Fatal("expected error for missing Stop Time column")
	}
	segs, _, err = ReadSegments(strings.NewReader(""))
	if err != nil || len(segs) != 0 {
		t.Fatalf("empty input: segs=%v err=%v", segs, err)
	}
}

func TestLoadSegmentsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20240101.csv")
	_, _, err := LoadSegments("20240101", path)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	var missing *MissingInputError
	if !errors.As(err, &missing) || missing.Date != "20240101" || missing.Path != path {
		t.Fatalf("unexpected error detail %#v", err)
	}
}

func TestReadDiarization(t *testing.T) {
	input := "START=0.03 STOP=1.03 SPEAKER=SPEAKER_26\n" +
		"\n" +
		"START=1.5 STOP=2 SPEAKER=SPEAKER_01\r\n" +
		"garbage line\n" +
		"START=3 STOP=2 SPEAKER=SPEAKER_01\n" +
		"START=x STOP=2 SPEAKER=SPEAKER_01\n" +
		"START=4 STOP=5 SPEAKER=bad.token\n"

	turns, issues, err := ReadDiarization(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDiarization: %v", err)
	}
	want := []timeline.DiarizationTurn{
		{Start: 0.03, End: 1.03, Speaker: "SPEAKER_26"},
		{Start: 1.5, End: 2, Speaker: "SPEAKER_01"},
	}
	if diff := cmp.Diff(want, turns, floatOpt); diff != "" {
		t.Fatalf("turns mismatch (-want +got):\n%s", diff)
	}
	if issues.Len() != 4 {
		t.Fatalf("expected 4 issues, got %v", issues)
	}
	if issues[0].Line != 4 || issues[3].Line != 7 {
		t.Fatalf("unexpected issue lines: %+v", issues)
	}
}

func TestDiarizationRoundTrip(t *testing.T) {
	turns := []timeline.DiarizationTurn{
		{Start: 0, End: 1.25, Speaker: "SPEAKER_00"},
		{Start: 1.25, End: 3.5, Speaker: "SPEAKER_01"},
	}
	var buf bytes.Buffer
	if err := WriteDiarization(&buf, turns); err != nil {
		t.Fatal(err)
	}
	got, issues, err := ReadDiarization(&buf)
	if err != nil || issues.Len() != 0 {
		t.Fatalf("err=%v issues=%v", err, issues)
	}
	if diff := cmp.Diff(turns, got, floatOpt); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertSRT(t *testing.T) {
	input := "1\r\n00:00:01,000 --> 00:00:04,500\r\nGood morning\r\nand welcome\r\n\r\n" +
		"2\n00:00:05,000 --> 00:00:45,000\nlyrics\n\n" +
		"3\n00:01:20,000 --> 00:01:21,000\n   \n\n" +
		"4\nnot a timing line\nhello\n\n" +
		"5\n00:01:21,000 --> 00:01:25,250\nback again\n"

	segs, issues, err := ConvertSRT(strings.NewReader(input), DefaultSRTOptions())
	if err != nil {
		t.Fatalf("ConvertSRT: %v", err)
	}
	want := []timeline.Segment{
		{Start: 1, End: 4.5, Type: timeline.TypeSpeech, Transcript: "Good morning and welcome"},
		{Start: 4.5, End: 5, Type: timeline.TypeSilence},
		{Start: 5, End: 45, Type: timeline.TypeMusic, Transcript: "lyrics"},
		{Start: 45, End: 80, Type: timeline.TypeMusic},
		{Start: 80, End: 81, Type: timeline.TypeSilence},
		{Start: 81, End: 85.25, Type: timeline.TypeSpeech, Transcript: "back again"},
	}
	if diff := cmp.Diff(want, segs, floatOpt); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if issues.Len() != 1 || issues[0].Line != 14 {
		t.Fatalf("expected one issue at line 14, got %+v", issues)
	}
}

func TestWriteSegmentsReadBack(t *testing.T) {
	segs := []timeline.Segment{
		{Start: 0, End: 1.1, Type: timeline.TypeSpeech, Transcript: "a, \"quoted\" line"},
		{Start: 1.1, End: 40, Type: timeline.TypeMusic},
	}
	var buf bytes.Buffer
	if err := WriteSegments(&buf, segs); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Start Time,Stop Time,Duration,Type,") {
		t.Fatalf("unexpected header: %q", buf.String())
	}
	got, issues, err := ReadSegments(&buf)
	if err != nil || issues.Len() != 0 {
		t.Fatalf("err=%v issues=%v", err, issues)
	}
	if diff := cmp.Diff(segs, got, floatOpt); diff != "" {
		t.Fatalf("read back mismatch (-want +got):\n%s", diff)
	}
}
