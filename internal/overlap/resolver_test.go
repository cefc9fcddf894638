package overlap

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"radiotimeline/internal/timeline"
)

var floatOpt = cmpopts.EquateApprox(0, 1e-9)

func TestAttributeRanksSpeakersByOverlap(t *testing.T) {
	turns := []timeline.DiarizationTurn{
		{Start: 0, End: 2, Speaker: "SPEAKER_01"},
		{Start: 2, End: 7, Speaker: "SPEAKER_00"},
		{Start: 7, End: 8, Speaker: "SPEAKER_01"},
		{Start: 20, End: 30, Speaker: "SPEAKER_02"},
	}
	got := Attribute(1, 10, turns)
	want := []timeline.SpeakerOverlap{
		{Speaker: "SPEAKER_00", Seconds: 5, Ratio: 5.0 / 7.0},
		{Speaker: "SPEAKER_01", Seconds: 2, Ratio: 2.0 / 7.0},
	}
	if diff := cmp.Diff(want, got, floatOpt); diff != "" {
		t.Fatalf("Attribute mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeTieKeepsTurnEncounterOrder(t *testing.T) {
	turns := []timeline.DiarizationTurn{
		{Start: 0, End: 1, Speaker: "SPEAKER_09"},
		{Start: 1, End: 2, Speaker: "SPEAKER_01"},
	}
	got := Attribute(0, 2, turns)
	if len(got) != 2 || got[0].Speaker != "SPEAKER_09" {
		t.Fatalf("expected first encountered speaker to win the tie, got %+v", got)
	}
}

func TestAttributeWithoutOverlapReturnsNil(t *testing.T) {
	turns := []timeline.DiarizationTurn{{Start: 5, End: 6, Speaker: "A"}}
	if got := Attribute(0, 5, turns); got != nil {
		t.Fatalf("touching intervals must not overlap, got %+v", got)
	}
	if got := Attribute(0, 5, nil); got != nil {
		t.Fatalf("expected nil without turns, got %+v", got)
	}
}

func TestAttributeRatiosSumToOneAndSorted(t *testing.T) {
	turns := []timeline.DiarizationTurn{
		{Start: 0, End: 3.3, Speaker: "A"},
		{Start: 1.1, End: 4.2, Speaker: "B"},
		{Start: 2.5, End: 9, Speaker: "C"},
		{Start: 3, End: 3.5, Speaker: "A"},
	}
	got := Attribute(0.5, 6.25, turns)
	var sum float64
	for i, o := range got {
		sum += o.Ratio
		if i > 0 && o.Seconds > got[i-1].Seconds {
			t.Fatalf("overlaps not sorted: %+v", got)
		}
	}
	if sum > 1+timeline.Epsilon || math.Abs(sum-1) > 1e-9 {
		t.Fatalf("ratios sum to %v", sum)
	}
}

func TestResolveSegmentRetypesEmptySpeechWithoutAttribution(t *testing.T) {
	turns := []timeline.DiarizationTurn{{Start: 0, End: 10, Speaker: "SPEAKER_00"}}
	for _, transcript := range []string{"", "   ", "\t\n"} {
		seg := timeline.Segment{Start: 1, End: 4, Type: timeline.TypeSpeech, Transcript: transcript}
		got := ResolveSegment(seg, turns)
		if got.Type != timeline.TypeMusic {
			t.Fatalf("transcript %q: expected music, got %q", transcript, got.Type)
		}
		if len(got.Overlaps) != 0 {
			t.Fatalf("transcript %q: expected no overlaps, got %+v", transcript, got.Overlaps)
		}
	}
}

func TestResolveSegmentSkipsNonSpeech(t *testing.T) {
	turns := []timeline.DiarizationTurn{{Start: 0, End: 60, Speaker: "SPEAKER_00"}}
	music := timeline.Segment{Start: 0, End: 40, Type: timeline.TypeMusic, Transcript: "la la la"}
	if got := ResolveSegment(music, turns); len(got.Overlaps) != 0 || got.Type != timeline.TypeMusic {
		t.Fatalf("music segment should stay unattributed music, got %+v", got)
	}
	silence := timeline.Segment{Start: 40, End: 42, Type: timeline.TypeSilence}
	if got := ResolveSegment(silence, turns); len(got.Overlaps) != 0 || got.Type != timeline.TypeSilence {
		t.Fatalf("silence segment changed: %+v", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	turns := []timeline.DiarizationTurn{
		{Start: 0, End: 4, Speaker: "A"},
		{Start: 4, End: 9, Speaker: "B"},
	}
	segments := []timeline.Segment{
		{Start: 0, End: 3, Type: timeline.TypeSpeech, Transcript: "hello"},
		{Start: 3, End: 5, Type: timeline.TypeSpeech},
		{Start: 5, End: 6, Type: timeline.TypeSilence},
		{Start: 6, End: 9, Type: timeline.TypeSpeech, Transcript: "bye"},
	}
	resolver := NewResolver(nil)
	first, stats := resolver.Resolve(segments, turns)
	second, _ := resolver.Resolve(first, turns)
	if diff := cmp.Diff(first, second, floatOpt); diff != "" {
		t.Fatalf("second pass changed output (-first +second):\n%s", diff)
	}
	if stats.Retyped != 1 || stats.Attributed != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if segments[1].Type != timeline.TypeSpeech {
		t.Fatal("Resolve mutated its input")
	}
}

func TestAnnotationRoundTrip(t *testing.T) {
	overlaps := []timeline.SpeakerOverlap{
		{Speaker: "SPEAKER_26", Seconds: 12.34, Ratio: 0.567},
		{Speaker: "SPEAKER_03", Seconds: 9.42, Ratio: 0.433},
	}
	encoded := FormatAnnotation(overlaps)
	if encoded != "SPEAKER_26:12.34s(0.567);SPEAKER_03:9.42s(0.433)" {
		t.Fatalf("unexpected annotation %q", encoded)
	}
	decoded, err := ParseAnnotation(encoded)
	if err != nil {
		t.Fatalf("ParseAnnotation: %v", err)
	}
	if diff := cmp.Diff(overlaps, decoded, floatOpt); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAnnotationRejectsGarbage(t *testing.T) {
	if _, err := ParseAnnotation("SPEAKER_00=1.0"); err == nil {
		t.Fatal("expected error")
	}
	got, err := ParseAnnotation("  ")
	if err != nil || got != nil {
		t.Fatalf("blank annotation should decode to nil, got %v %v", got, err)
	}
}
