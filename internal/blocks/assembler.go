package blocks

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"radiotimeline/internal/logging"
	"radiotimeline/internal/timeline"
)

// Options holds the block decision thresholds.
type Options struct {
	// MusicMinSeconds makes a run MUSIC once its music duration reaches it.
	MusicMinSeconds float64
	// MusicRatio makes a run MUSIC once music reaches this share of its duration.
	MusicRatio float64
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{MusicMinSeconds: 60, MusicRatio: 0.7}
}

// Assembler builds blocks from resolved segments and a role map.
type Assembler struct {
	opts   Options
	logger *slog.Logger
}

// NewAssembler constructs an Assembler.
func NewAssembler(opts Options, logger *slog.Logger) *Assembler {
	return &Assembler{opts: opts, logger: logging.NewComponentLogger(logger, "blocks")}
}

// Assemble returns the merged block list in timeline order.
func (a *Assembler) Assemble(segments []timeline.Segment, roles timeline.RoleMap) []timeline.Block {
	runs := splitRuns(segments)
	blocks := make([]timeline.Block, 0, len(runs))
	for _, r := range runs {
		blocks = append(blocks, a.emit(segments, r, roles))
	}
	merged := Merge(blocks)
	a.logger.Debug("blocks assembled",
		logging.Int("runs", len(runs)),
		logging.Int("blocks", len(merged)),
	)
	return merged
}

// RunSummary aggregates the durations and roles of one run.
type RunSummary struct {
	Total  float64
	Music  float64
	Speech float64
	Roles  map[timeline.Role]bool
}

// MusicRatio returns Music / max(Total, epsilon).
func (s RunSummary) MusicRatio() float64 {
	total := s.Total
	if total < timeline.Epsilon {
		total = timeline.Epsilon
	}
	return s.Music / total
}

// Decide maps a run summary to a block type; the first matching rule wins.
func (a *Assembler) Decide(s RunSummary) timeline.BlockType {
	switch {
	case s.Music >= a.opts.MusicMinSeconds || s.MusicRatio() >= a.opts.MusicRatio:
		return timeline.BlockMusic
	case s.Roles[timeline.RoleGuest]:
		return timeline.BlockGuest
	case s.Roles[timeline.RoleDJ]:
		return timeline.BlockDJ
	case s.Roles[timeline.RoleAdSpeaker] || s.Speech > 0:
		return timeline.BlockAD
	case s.Speech == 0 && s.Music > 0:
		return timeline.BlockMusic
	default:
		return timeline.BlockAD
	}
}

func (a *Assembler) emit(segments []timeline.Segment, r run, roles timeline.RoleMap) timeline.Block {
	summary := RunSummary{Roles: make(map[timeline.Role]bool)}
	speakers := make(map[string]struct{})
	var texts []string
	for _, idx := range r.indices {
		seg := segments[idx]
		d := seg.Duration()
		summary.Total += d
		switch seg.Type {
		case timeline.TypeMusic:
			summary.Music += d
		case timeline.TypeSpeech:
			summary.Speech += d
			for _, speaker := range seg.Speakers() {
				speakers[speaker] = struct{}{}
				summary.Roles[roles.Role(speaker)] = true
			}
			if text := strings.TrimSpace(seg.Transcript); text != "" {
				texts = append(texts, text)
			}
		}
	}

	first, last := segments[r.indices[0]], segments[r.indices[len(r.indices)-1]]
	return timeline.Block{
		Type:         a.Decide(summary),
		Start:        first.Start,
		End:          last.End,
		Duration:     summary.Total,
		SegmentCount: len(r.indices),
		Speakers:     sortedKeys(speakers),
		Text:         strings.Join(texts, " "),
		Segments:     slices.Clone(r.indices),
	}
}

// Merge folds adjacent blocks of the same type until no two neighbors share
// a type. Merged blocks span from the first start to the last end.
func Merge(blocks []timeline.Block) []timeline.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := []timeline.Block{cloneBlock(blocks[0])}
	for _, b := range blocks[1:] {
		last := &out[len(out)-1]
		if last.Type != b.Type {
			out = append(out, cloneBlock(b))
			continue
		}
		last.End = b.End
		last.Duration = last.End - last.Start
		last.SegmentCount += b.SegmentCount
		last.Speakers = unionSorted(last.Speakers, b.Speakers)
		last.Segments = append(last.Segments, b.Segments...)
		if b.Text != "" {
			if last.Text == "" {
				last.Text = b.Text
			} else {
				last.Text += " " + b.Text
			}
		}
	}
	return out
}

func cloneBlock(b timeline.Block) timeline.Block {
	b.Speakers = slices.Clone(b.Speakers)
	b.Segments = slices.Clone(b.Segments)
	return b
}

func unionSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		set[s] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
