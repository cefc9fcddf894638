// Package overlap attributes transcript segments to diarized speakers.
//
// Each segment is first reconciled against its transcript (speech without
// text is treated as music), then speech segments with text receive a ranked
// list of speakers by temporal overlap with the diarization turns. The first
// entry of that list is the segment's dominant speaker.
package overlap
