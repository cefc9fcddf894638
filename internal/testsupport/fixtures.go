package testsupport

import "radiotimeline/internal/timeline"

// Broadcast is a small synthetic day: a DJ ("SPEAKER_00") alternating with a
// guest ("SPEAKER_01") for eight exchanges, an advert read by "SPEAKER_02",
// a song and silence gaps.
type Broadcast struct {
	Segments []timeline.Segment
	Turns    []timeline.DiarizationTurn
}

// SampleBroadcast builds the synthetic day.
func SampleBroadcast() Broadcast {
	var b Broadcast
	clock := 0.0
	add := func(typ timeline.SegmentType, d float64, text, speaker string) {
		b.Segments = append(b.Segments, timeline.Segment{Start: clock, End: clock + d, Type: typ, Transcript: text})
		if speaker != "" {
			b.Turns = append(b.Turns, timeline.DiarizationTurn{Start: clock, End: clock + d, Speaker: speaker})
		}
		clock += d
	}

	for i := 0; i < 8; i++ {
		add(timeline.TypeSpeech, 30, "host talk", "SPEAKER_00")
		add(timeline.TypeSpeech, 5, "guest reply", "SPEAKER_01")
	}
	add(timeline.TypeSilence, 1, "", "")
	add(timeline.TypeMusic, 180, "", "")
	add(timeline.TypeSilence, 1, "", "")
	add(timeline.TypeSpeech, 20, "call now", "SPEAKER_02")
	add(timeline.TypeSpeech, 4, "", "SPEAKER_00")
	return b
}
