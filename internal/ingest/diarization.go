package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"radiotimeline/internal/timeline"
)

const sourceDiarization = "diarization"

var turnPattern = regexp.MustCompile(`^START=(\S+)\s+STOP=(\S+)\s+SPEAKER=(\S+)$`)

// LoadDiarization reads the diarization turn file at path. A missing file
// yields a *MissingInputError for date.
func LoadDiarization(date, path string) ([]timeline.DiarizationTurn, Issues, error) {
	f, err := openArtifact(date, "diarization", path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadDiarization(f)
}

// ReadDiarization parses lines of the form
//
//	START=0.03 STOP=1.03 SPEAKER=SPEAKER_26
//
// Blank lines are ignored.
func ReadDiarization(r io.Reader) ([]timeline.DiarizationTurn, Issues, error) {
	scanner := bufio.NewScanner(skipBOM(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		turns  []timeline.DiarizationTurn
		issues Issues
		line   int
	)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		turn, err := parseTurn(text)
		if err != nil {
			issues.add(sourceDiarization, line, "%v", err)
			continue
		}
		turns = append(turns, turn)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read diarization: %w", err)
	}
	return turns, issues, nil
}

func parseTurn(text string) (timeline.DiarizationTurn, error) {
	m := turnPattern.FindStringSubmatch(text)
	if m == nil {
		return timeline.DiarizationTurn{}, fmt.Errorf("unrecognized line %q", text)
	}
	start, err := parseSeconds(m[1])
	if err != nil {
		return timeline.DiarizationTurn{}, fmt.Errorf("start: %w", err)
	}
	stop, err := parseSeconds(m[2])
	if err != nil {
		return timeline.DiarizationTurn{}, fmt.Errorf("stop: %w", err)
	}
	turn := timeline.DiarizationTurn{Start: start, End: stop, Speaker: m[3]}
	if err := checkRecord(turn); err != nil {
		return timeline.DiarizationTurn{}, err
	}
	return turn, nil
}

// WriteDiarization writes turns in the format ReadDiarization accepts.
func WriteDiarization(w io.Writer, turns []timeline.DiarizationTurn) error {
	bw := bufio.NewWriter(w)
	for _, t := range turns {
		if _, err := fmt.Fprintf(bw, "START=%s STOP=%s SPEAKER=%s\n", FormatSeconds(t.Start), FormatSeconds(t.End), t.Speaker); err != nil {
			return err
		}
	}
	return bw.Flush()
}
