package ingest

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"radiotimeline/internal/textutil"
	"radiotimeline/internal/timeline"
)

const sourceSRT = "srt"

var cueTimingPattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})`)

// SRTOptions controls how cues become segment rows.
type SRTOptions struct {
	// MusicMinSeconds types a cue at least this long as music.
	MusicMinSeconds float64
	// GapMusicMinSeconds types an uncovered gap at least this long as music;
	// shorter gaps become silence.
	GapMusicMinSeconds float64
}

// DefaultSRTOptions returns the standard conversion thresholds.
func DefaultSRTOptions() SRTOptions {
	return SRTOptions{MusicMinSeconds: 35, GapMusicMinSeconds: 30}
}

type cue struct {
	start float64
	end   float64
	text  string
}

// ConvertSRT turns an SRT transcript into segment rows. Gaps between
// consecutive cues become music or silence rows; the span before the first
// cue is not filled.
func ConvertSRT(r io.Reader, opts SRTOptions) ([]timeline.Segment, Issues, error) {
	cues, issues, err := readCues(r)
	if err != nil {
		return nil, nil, err
	}

	var (
		segments []timeline.Segment
		prevStop float64
	)
	for i, c := range cues {
		if i > 0 && c.start > prevStop {
			gapType := timeline.TypeSilence
			if round3(c.start-prevStop) >= opts.GapMusicMinSeconds {
				gapType = timeline.TypeMusic
			}
			segments = append(segments, timeline.Segment{Start: prevStop, End: c.start, Type: gapType})
		}
		segments = append(segments, timeline.Segment{
			Start:      c.start,
			End:        c.end,
			Type:       cueType(c, opts),
			Transcript: c.text,
		})
		prevStop = c.end
	}
	return segments, issues, nil
}

func cueType(c cue, opts SRTOptions) timeline.SegmentType {
	switch {
	case round3(c.end-c.start) >= opts.MusicMinSeconds:
		return timeline.TypeMusic
	case c.text == "":
		return timeline.TypeSilence
	default:
		return timeline.TypeSpeech
	}
}

// readCues splits the input into blank-line separated blocks and parses each
// as index, timing line and text lines.
func readCues(r io.Reader) ([]cue, Issues, error) {
	scanner := bufio.NewScanner(skipBOM(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cues   []cue
		issues Issues
		block  []string
		first  int
		line   int
	)
	flush := func() {
		if len(block) == 0 {
			return
		}
		c, err := parseCue(block)
		if err != nil {
			issues.add(sourceSRT, first, "%v", err)
		} else {
			cues = append(cues, c)
		}
		block = block[:0]
	}
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		if len(block) == 0 {
			first = line
		}
		block = append(block, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read srt: %w", err)
	}
	flush()
	return cues, issues, nil
}

func parseCue(block []string) (cue, error) {
	timing := 0
	if _, err := strconv.Atoi(strings.TrimSpace(block[0])); err == nil {
		timing = 1
	}
	if timing >= len(block) {
		return cue{}, fmt.Errorf("cue without timing line")
	}
	m := cueTimingPattern.FindStringSubmatch(strings.TrimSpace(block[timing]))
	if m == nil {
		return cue{}, fmt.Errorf("invalid timing line %q", block[timing])
	}
	start := timestamp(m[1], m[2], m[3], m[4])
	end := timestamp(m[5], m[6], m[7], m[8])
	if end < start {
		return cue{}, fmt.Errorf("cue ends before it starts")
	}
	lines := make([]string, 0, len(block)-timing-1)
	for _, l := range block[timing+1:] {
		lines = append(lines, strings.TrimSpace(l))
	}
	return cue{
		start: start,
		end:   end,
		text:  textutil.NormalizeTranscript(strings.Join(lines, " ")),
	}, nil
}

func timestamp(h, m, s, ms string) float64 {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
