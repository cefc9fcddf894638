package roles

import (
	"log/slog"
	"sort"

	"radiotimeline/internal/logging"
	"radiotimeline/internal/timeline"
)

// Options tunes role inference.
type Options struct {
	// Window is the number of segment positions inspected on each side of an
	// occurrence.
	Window int
	// GuestMinInteractions is the minimum interaction count for a GUEST.
	GuestMinInteractions int
	// GuestDominance is how many times the runner-up count the leader needs.
	GuestDominance float64
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{Window: 3, GuestMinInteractions: 7, GuestDominance: 2}
}

// SpeakerStats describes one speaker in the role table.
type SpeakerStats struct {
	Speaker       string        `json:"speaker"`
	Role          timeline.Role `json:"role"`
	TotalDuration float64       `json:"total_duration"`
	// RatioToDJ is TotalDuration divided by the DJ's total (1 for the DJ).
	RatioToDJ    float64 `json:"ratio_to_dj"`
	Interactions int     `json:"interaction_count"`
}

// Result is the outcome of role inference for one broadcast.
type Result struct {
	Roles timeline.RoleMap
	DJ    string
	Guest string
	// Stats is ordered by TotalDuration descending.
	Stats []SpeakerStats
}

// Inferrer assigns speaker roles.
type Inferrer struct {
	opts   Options
	logger *slog.Logger
}

// New constructs an Inferrer. Zero-valued options fall back to defaults.
func New(opts Options, logger *slog.Logger) *Inferrer {
	def := DefaultOptions()
	if opts.Window <= 0 {
		opts.Window = def.Window
	}
	if opts.GuestMinInteractions <= 0 {
		opts.GuestMinInteractions = def.GuestMinInteractions
	}
	if opts.GuestDominance <= 0 {
		opts.GuestDominance = def.GuestDominance
	}
	return &Inferrer{opts: opts, logger: logging.NewComponentLogger(logger, "roles")}
}

// Infer computes the role map from resolved segments. Segments without a
// dominant speaker contribute nothing; when no speaker has attributed speech
// the result holds an empty RoleMap.
func (inf *Inferrer) Infer(segments []timeline.Segment) Result {
	seq := timeline.DominantSequence(segments)
	durations := aggregateDurations(segments, seq)
	if len(durations) == 0 {
		inf.logger.Debug("no attributable speech; role map is empty")
		return Result{Roles: timeline.NewRoleMap(nil)}
	}

	dj := durations[0]
	inf.logger.Debug("dj identified",
		logging.String("speaker", dj.speaker),
		logging.Float64("duration_seconds", dj.seconds),
	)

	counts := CountInteractions(seq, dj.speaker, inf.opts.Window)
	ranking := make([]ranked, 0, len(durations)-1)
	for _, d := range durations[1:] {
		ranking = append(ranking, ranked{speaker: d.speaker, count: counts[d.speaker]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].count > ranking[j].count
	})
	guest := inf.selectGuest(ranking)

	assignments := make(map[string]timeline.Role, len(durations))
	stats := make([]SpeakerStats, 0, len(durations))
	for _, d := range durations {
		role := timeline.RoleAdSpeaker
		switch d.speaker {
		case dj.speaker:
			role = timeline.RoleDJ
		case guest:
			role = timeline.RoleGuest
		}
		assignments[d.speaker] = role
		ratio := 1.0
		if d.speaker != dj.speaker {
			ratio = d.seconds / dj.seconds
		}
		stats = append(stats, SpeakerStats{
			Speaker:       d.speaker,
			Role:          role,
			TotalDuration: d.seconds,
			RatioToDJ:     ratio,
			Interactions:  counts[d.speaker],
		})
	}

	return Result{
		Roles: timeline.NewRoleMap(assignments),
		DJ:    dj.speaker,
		Guest: guest,
		Stats: stats,
	}
}

type ranked struct {
	speaker string
	count   int
}

// selectGuest applies the dominance rule to a ranking sorted by count.
func (inf *Inferrer) selectGuest(ranking []ranked) string {
	switch len(ranking) {
	case 0:
		return ""
	case 1:
		if ranking[0].count >= inf.opts.GuestMinInteractions {
			inf.logger.Debug("guest detected as only non-dj speaker",
				logging.String("speaker", ranking[0].speaker),
				logging.Int("interactions", ranking[0].count),
			)
			return ranking[0].speaker
		}
		return ""
	}

	first, second := ranking[0], ranking[1]
	if float64(first.count) >= inf.opts.GuestDominance*float64(second.count) && first.count >= inf.opts.GuestMinInteractions {
		inf.logger.Debug("guest detected",
			logging.String("speaker", first.speaker),
			logging.Int("interactions", first.count),
			logging.Int("runner_up_interactions", second.count),
		)
		return first.speaker
	}
	inf.logger.Debug("no clear guest",
		logging.Int("first", first.count),
		logging.Int("second", second.count),
	)
	return ""
}

type speakerDuration struct {
	speaker string
	seconds float64
}

// aggregateDurations sums segment durations per dominant speaker, sorted
// descending. Ties keep first-appearance order.
func aggregateDurations(segments []timeline.Segment, seq []string) []speakerDuration {
	index := make(map[string]int)
	var out []speakerDuration
	for i, speaker := range seq {
		if speaker == "" {
			continue
		}
		pos, ok := index[speaker]
		if !ok {
			pos = len(out)
			index[speaker] = pos
			out = append(out, speakerDuration{speaker: speaker})
		}
		out[pos].seconds += segments[i].Duration()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].seconds > out[j].seconds
	})
	return out
}

// CountInteractions counts, for every speaker other than dj, the occurrences
// in seq that have dj within window positions before or after. Each
// occurrence counts at most once. seq is the raw per-segment sequence; empty
// entries are positions without a dominant speaker.
func CountInteractions(seq []string, dj string, window int) map[string]int {
	counts := make(map[string]int)
	for i, speaker := range seq {
		if speaker == "" || speaker == dj {
			continue
		}
		if _, ok := counts[speaker]; !ok {
			counts[speaker] = 0
		}
		if djWithin(seq, i, dj, window) {
			counts[speaker]++
		}
	}
	return counts
}

func djWithin(seq []string, i int, dj string, window int) bool {
	for offset := 1; offset <= window; offset++ {
		if j := i - offset; j >= 0 && seq[j] == dj {
			return true
		}
		if j := i + offset; j < len(seq) && seq[j] == dj {
			return true
		}
	}
	return false
}
