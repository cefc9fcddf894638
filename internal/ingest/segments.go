package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"radiotimeline/internal/textutil"
	"radiotimeline/internal/timeline"
)

// Segment table column names.
const (
	ColumnStart          = "Start Time"
	ColumnStop           = "Stop Time"
	ColumnDuration       = "Duration"
	ColumnType           = "Type"
	ColumnMP3File        = "MP3 File"
	ColumnTranscriptFile = "Transcript File"
	ColumnTranscript     = "Transcript"
)

// SegmentHeader is the column order written for segment tables.
var SegmentHeader = []string{
	ColumnStart, ColumnStop, ColumnDuration, ColumnType,
	ColumnMP3File, ColumnTranscriptFile, ColumnTranscript,
}

const sourceSegments = "segments"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadSegments reads the segment table at path. A missing file yields a
// *MissingInputError for date.
func LoadSegments(date, path string) ([]timeline.Segment, Issues, error) {
	f, err := openArtifact(date, "segment table", path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadSegments(f)
}

// ReadSegments parses a segment table. Columns are addressed by header name;
// unknown columns are ignored and the Duration column is informational.
func ReadSegments(r io.Reader) ([]timeline.Segment, Issues, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read segment header: %w", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{ColumnStart, ColumnStop, ColumnType} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("segment table: missing column %q", required)
		}
	}

	var (
		segments []timeline.Segment
		issues   Issues
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				issues.add(sourceSegments, perr.Line, "%v", perr.Err)
				continue
			}
			return nil, nil, fmt.Errorf("read segment table: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlankRecord(record) {
			continue
		}
		seg, err := parseSegmentRecord(record, cols)
		if err != nil {
			issues.add(sourceSegments, line, "%v", err)
			continue
		}
		segments = append(segments, seg)
	}
	return segments, issues, nil
}

func parseSegmentRecord(record []string, cols map[string]int) (timeline.Segment, error) {
	start, err := parseSeconds(field(record, cols, ColumnStart))
	if err != nil {
		return timeline.Segment{}, fmt.Errorf("start: %w", err)
	}
	stop, err := parseSeconds(field(record, cols, ColumnStop))
	if err != nil {
		return timeline.Segment{}, fmt.Errorf("stop: %w", err)
	}
	typ, err := timeline.ParseSegmentType(field(record, cols, ColumnType))
	if err != nil {
		return timeline.Segment{}, err
	}
	seg := timeline.Segment{
		Start:      start,
		End:        stop,
		Type:       typ,
		Transcript: textutil.NormalizeTranscript(field(record, cols, ColumnTranscript)),
	}
	if err := checkRecord(seg); err != nil {
		return timeline.Segment{}, err
	}
	return seg, nil
}

// WriteSegments writes segments in the segment table format.
func WriteSegments(w io.Writer, segments []timeline.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SegmentHeader); err != nil {
		return err
	}
	for _, seg := range segments {
		row := []string{
			FormatSeconds(seg.Start),
			FormatSeconds(seg.End),
			FormatSeconds(seg.Duration()),
			string(seg.Type),
			"",
			"",
			seg.Transcript,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatSeconds renders a time value with at most millisecond precision.
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func parseSeconds(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return v, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		for _, known := range SegmentHeader {
			if strings.EqualFold(name, known) {
				name = known
				break
			}
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func openArtifact(date, artifact, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Date: date, Artifact: artifact, Path: path}
		}
		return nil, fmt.Errorf("open %s: %w", artifact, err)
	}
	return f, nil
}
