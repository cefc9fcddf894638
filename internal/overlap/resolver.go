package overlap

import (
	"log/slog"
	"sort"

	"radiotimeline/internal/logging"
	"radiotimeline/internal/timeline"
)

// Stats summarizes one Resolve pass.
type Stats struct {
	Retyped      int `json:"retyped"`
	Attributed   int `json:"attributed"`
	Unattributed int `json:"unattributed"`
}

// Resolver enriches segments with speaker attributions.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver constructs a Resolver. A nil logger disables logging.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logging.NewComponentLogger(logger, "overlap")}
}

// Resolve returns enriched copies of segments; the input is not modified.
func (r *Resolver) Resolve(segments []timeline.Segment, turns []timeline.DiarizationTurn) ([]timeline.Segment, Stats) {
	var stats Stats
	out := make([]timeline.Segment, len(segments))
	for i, seg := range segments {
		resolved := ResolveSegment(seg, turns)
		if seg.Type != resolved.Type {
			stats.Retyped++
		}
		switch {
		case len(resolved.Overlaps) > 0:
			stats.Attributed++
		case resolved.Type == timeline.TypeSpeech:
			stats.Unattributed++
		}
		out[i] = resolved
	}
	r.logger.Debug("speaker overlaps resolved",
		logging.Int("segments", len(segments)),
		logging.Int("turns", len(turns)),
		logging.Int("retyped", stats.Retyped),
		logging.Int("attributed", stats.Attributed),
		logging.Int("unattributed", stats.Unattributed),
	)
	return out, stats
}

// ResolveSegment reconciles the segment type and recomputes its overlaps.
func ResolveSegment(seg timeline.Segment, turns []timeline.DiarizationTurn) timeline.Segment {
	out := Reconcile(seg)
	out.Overlaps = nil
	if out.Type == timeline.TypeSpeech && out.HasTranscript() {
		out.Overlaps = Attribute(out.Start, out.End, turns)
	}
	return out
}

// Reconcile rewrites a speech segment without transcript text to music.
// Every other segment keeps its type.
func Reconcile(seg timeline.Segment) timeline.Segment {
	out := seg.Clone()
	if out.Type == timeline.TypeSpeech && !out.HasTranscript() {
		out.Type = timeline.TypeMusic
	}
	return out
}

// Attribute ranks speakers by their overlap with [start, end). Speakers tied on
// overlap keep the order in which their first overlapping turn appears. It
// returns nil when no turn overlaps the interval.
func Attribute(start, end float64, turns []timeline.DiarizationTurn) []timeline.SpeakerOverlap {
	var (
		order []string
		sums  = make(map[string]float64)
		total float64
	)
	for _, turn := range turns {
		lo := max(start, turn.Start)
		hi := min(end, turn.End)
		if lo >= hi {
			continue
		}
		if _, seen := sums[turn.Speaker]; !seen {
			order = append(order, turn.Speaker)
		}
		sums[turn.Speaker] += hi - lo
		total += hi - lo
	}
	if len(order) == 0 || total <= 0 {
		return nil
	}

	overlaps := make([]timeline.SpeakerOverlap, 0, len(order))
	for _, speaker := range order {
		seconds := sums[speaker]
		overlaps = append(overlaps, timeline.SpeakerOverlap{
			Speaker: speaker,
			Seconds: seconds,
			Ratio:   seconds / total,
		})
	}
	sort.SliceStable(overlaps, func(i, j int) bool {
		return overlaps[i].Seconds > overlaps[j].Seconds
	})
	return overlaps
}
