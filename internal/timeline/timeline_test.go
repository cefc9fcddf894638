package timeline

import "testing"

func TestParseSegmentType(t *testing.T) {
	cases := map[string]SegmentType{
		"speech":    TypeSpeech,
		" Music ":   TypeMusic,
		"SILENCE\n": TypeSilence,
	}
	for input, want := range cases {
		got, err := ParseSegmentType(input)
		if err != nil {
			t.Fatalf("ParseSegmentType(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseSegmentType(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseSegmentType("jingle"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestRoleMapCopiesAssignments(t *testing.T) {
	src := map[string]Role{"SPEAKER_00": RoleDJ, "SPEAKER_01": RoleGuest}
	roles := NewRoleMap(src)
	src["SPEAKER_00"] = RoleAdSpeaker

	if roles.Role("SPEAKER_00") != RoleDJ {
		t.Fatalf("role map should not observe caller mutation, got %q", roles.Role("SPEAKER_00"))
	}
	if roles.Role("SPEAKER_09") != RoleUnknown {
		t.Fatalf("expected unknown role for unseen speaker")
	}
	dj, ok := roles.DJ()
	if !ok || dj != "SPEAKER_00" {
		t.Fatalf("DJ() = %q, %v", dj, ok)
	}
	if got := roles.Speakers(); len(got) != 2 || got[0] != "SPEAKER_00" || got[1] != "SPEAKER_01" {
		t.Fatalf("unexpected speakers %v", got)
	}
}

func TestZeroRoleMapIsEmpty(t *testing.T) {
	var roles RoleMap
	if roles.Len() != 0 {
		t.Fatalf("expected empty map")
	}
	if _, ok := roles.DJ(); ok {
		t.Fatal("zero map should have no DJ")
	}
	if roles.Role("x") != RoleUnknown {
		t.Fatal("zero map should report unknown")
	}
}

func TestDominantSequence(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1, Type: TypeSpeech, Overlaps: []SpeakerOverlap{{Speaker: "A", Seconds: 1, Ratio: 1}}},
		{Start: 1, End: 2, Type: TypeSilence},
		{Start: 2, End: 3, Type: TypeSpeech, Overlaps: []SpeakerOverlap{{Speaker: "B", Seconds: 0.6, Ratio: 0.6}, {Speaker: "A", Seconds: 0.4, Ratio: 0.4}}},
	}
	seq := DominantSequence(segments)
	want := []string{"A", "", "B"}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence[%d] = %q, want %q", i, seq[i], want[i])
		}
	}
}

func TestSegmentCloneDetachesOverlaps(t *testing.T) {
	seg := Segment{Overlaps: []SpeakerOverlap{{Speaker: "A"}}}
	clone := seg.Clone()
	clone.Overlaps[0].Speaker = "B"
	if seg.Overlaps[0].Speaker != "A" {
		t.Fatal("clone shares overlap storage")
	}
}
