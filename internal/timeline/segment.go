package timeline

import (
	"fmt"
	"strings"
)

// Epsilon guards ratio denominators and float comparisons on durations.
const Epsilon = 1e-6

// SegmentType is the coarse audio class of a segment.
type SegmentType string

const (
	TypeSpeech  SegmentType = "speech"
	TypeMusic   SegmentType = "music"
	TypeSilence SegmentType = "silence"
)

// ParseSegmentType maps a table value onto a SegmentType. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseSegmentType(value string) (SegmentType, error) {
	switch SegmentType(strings.ToLower(strings.TrimSpace(value))) {
	case TypeSpeech:
		return TypeSpeech, nil
	case TypeMusic:
		return TypeMusic, nil
	case TypeSilence:
		return TypeSilence, nil
	default:
		return "", fmt.Errorf("unknown segment type %q", value)
	}
}

// SpeakerOverlap is one entry of a segment's speaker attribution.
type SpeakerOverlap struct {
	Speaker string  `json:"speaker"`
	Seconds float64 `json:"seconds"`
	Ratio   float64 `json:"ratio"`
}

// Segment is an interval [Start, End) of the broadcast timeline.
//
// Transcript holds normalized text; the empty string means no speech was
// detected. Overlaps is ordered by Seconds descending and is only populated
// for speech segments that carry a transcript.
type Segment struct {
	Start      float64          `json:"start" validate:"gte=0"`
	End        float64          `json:"end" validate:"gtefield=Start"`
	Type       SegmentType      `json:"type" validate:"oneof=speech music silence"`
	Transcript string           `json:"transcript,omitempty"`
	Overlaps   []SpeakerOverlap `json:"speaker_overlaps,omitempty"`
}

// Duration returns End - Start.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// HasTranscript reports whether the segment carries non-blank text.
func (s Segment) HasTranscript() bool {
	return strings.TrimSpace(s.Transcript) != ""
}

// DominantSpeaker returns the speaker with the greatest overlap, if any.
func (s Segment) DominantSpeaker() (string, bool) {
	if len(s.Overlaps) == 0 {
		return "", false
	}
	return s.Overlaps[0].Speaker, true
}

// Speakers returns every attributed speaker in overlap order.
func (s Segment) Speakers() []string {
	if len(s.Overlaps) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.Overlaps))
	for _, o := range s.Overlaps {
		out = append(out, o.Speaker)
	}
	return out
}

// Clone returns a copy that shares no slice storage with s.
func (s Segment) Clone() Segment {
	if s.Overlaps != nil {
		overlaps := make([]SpeakerOverlap, len(s.Overlaps))
		copy(overlaps, s.Overlaps)
		s.Overlaps = overlaps
	}
	return s
}

// DiarizationTurn attributes the interval [Start, End) to one anonymous speaker.
type DiarizationTurn struct {
	Start   float64 `json:"start" validate:"gte=0"`
	End     float64 `json:"end" validate:"gtefield=Start"`
	Speaker string  `json:"speaker" validate:"required,speakertoken"`
}

// DominantSequence returns the dominant speaker of every segment in order,
// with the empty string for non-speech segments and segments that have none.
func DominantSequence(segments []Segment) []string {
	seq := make([]string, len(segments))
	for i, seg := range segments {
		if seg.Type != TypeSpeech {
			continue
		}
		seq[i], _ = seg.DominantSpeaker()
	}
	return seq
}
