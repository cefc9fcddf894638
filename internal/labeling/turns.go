package labeling

import "radiotimeline/internal/timeline"

// TurnStats summarizes how a speaker's collapsed turns sit next to DJ turns.
type TurnStats struct {
	Speaker string
	// Turns is the number of collapsed turns held by the speaker.
	Turns int
	// Interacting counts turns whose previous or next turn belongs to the DJ.
	Interacting int
	// Count is the raw number of segments the speaker dominates.
	Count int
}

// Rate returns Interacting / Turns, or zero when the speaker has no turns.
func (s TurnStats) Rate() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.Interacting) / float64(s.Turns)
}

// CollapseTurns merges consecutive identical dominant speakers. Segments
// without a dominant speaker are skipped and do not break a turn.
func CollapseTurns(seq []string) []string {
	var turns []string
	for _, speaker := range seq {
		if speaker == "" {
			continue
		}
		if n := len(turns); n > 0 && turns[n-1] == speaker {
			continue
		}
		turns = append(turns, speaker)
	}
	return turns
}

// ComputeTurnStats derives per-speaker turn statistics. A neighboring turn
// interacts when its speaker's role is DJ.
func ComputeTurnStats(segments []timeline.Segment, roles timeline.RoleMap) map[string]TurnStats {
	seq := timeline.DominantSequence(segments)
	stats := make(map[string]TurnStats)
	for _, speaker := range seq {
		if speaker == "" {
			continue
		}
		st := stats[speaker]
		st.Speaker = speaker
		st.Count++
		stats[speaker] = st
	}

	turns := CollapseTurns(seq)
	isDJ := func(i int) bool {
		return i >= 0 && i < len(turns) && roles.Role(turns[i]) == timeline.RoleDJ
	}
	for i, speaker := range turns {
		st := stats[speaker]
		st.Turns++
		if isDJ(i-1) || isDJ(i+1) {
			st.Interacting++
		}
		stats[speaker] = st
	}
	return stats
}
