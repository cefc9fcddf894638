package labeling

import (
	"log/slog"

	"radiotimeline/internal/logging"
	"radiotimeline/internal/timeline"
)

// Options holds the label thresholds.
type Options struct {
	GuestMinRate  float64
	GuestMinCount int
	ADMinSeconds  float64
	ADMaxSeconds  float64
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{GuestMinRate: 0.2, GuestMinCount: 5, ADMinSeconds: 0.5, ADMaxSeconds: 100}
}

// Assigner labels segments.
type Assigner struct {
	opts   Options
	logger *slog.Logger
}

// NewAssigner constructs an Assigner.
func NewAssigner(opts Options, logger *slog.Logger) *Assigner {
	return &Assigner{opts: opts, logger: logging.NewComponentLogger(logger, "labeling")}
}

// Assign labels every segment. The input is not modified.
func (a *Assigner) Assign(segments []timeline.Segment, roles timeline.RoleMap) []timeline.LabeledSegment {
	stats := ComputeTurnStats(segments, roles)
	out := make([]timeline.LabeledSegment, len(segments))
	counts := make(map[timeline.Label]int)
	for i, seg := range segments {
		label := a.Label(seg, roles, stats)
		out[i] = timeline.LabeledSegment{Segment: seg.Clone(), Label: label}
		counts[label]++
	}
	a.logger.Debug("segments labeled",
		logging.Int("segments", len(segments)),
		logging.Int("dj", counts[timeline.LabelDJ]),
		logging.Int("guest", counts[timeline.LabelGuest]),
		logging.Int("ad", counts[timeline.LabelAD]),
		logging.Int("program", counts[timeline.LabelProgram]),
	)
	return out
}

// Label decides a single segment's label; the first matching rule wins.
func (a *Assigner) Label(seg timeline.Segment, roles timeline.RoleMap, stats map[string]TurnStats) timeline.Label {
	switch seg.Type {
	case timeline.TypeMusic:
		return timeline.LabelMusic
	case timeline.TypeSilence:
		return timeline.LabelSilence
	}

	speaker, ok := seg.DominantSpeaker()
	if !ok {
		return timeline.LabelProgram
	}
	switch roles.Role(speaker) {
	case timeline.RoleDJ:
		return timeline.LabelDJ
	case timeline.RoleAdSpeaker:
		return timeline.LabelAD
	}

	st := stats[speaker]
	if st.Rate() >= a.opts.GuestMinRate && st.Count >= a.opts.GuestMinCount {
		return timeline.LabelGuest
	}
	if d := seg.Duration(); d >= a.opts.ADMinSeconds && d <= a.opts.ADMaxSeconds {
		return timeline.LabelAD
	}
	return timeline.LabelProgram
}
