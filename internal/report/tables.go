package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"radiotimeline/internal/ingest"
	"radiotimeline/internal/overlap"
	"radiotimeline/internal/roles"
	"radiotimeline/internal/timeline"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Column headers of the output tables.
var (
	EnrichedHeader = []string{
		ingest.ColumnStart, ingest.ColumnStop, ingest.ColumnDuration, ingest.ColumnType,
		ingest.ColumnTranscript, "Speakers", "Dominant_Speaker",
	}
	LabeledHeader = append(append([]string(nil), EnrichedHeader...), "Predicted_Label")
	RolesHeader   = []string{"Speaker", "Role", "Total_Duration", "Ratio_to_DJ", "Interaction_Count"}
	BlocksHeader  = []string{"block_type", "start", "end", "duration", "segments", "speaker_count", "speakers", "text"}
)

// WriteEnriched writes segments with their overlap annotation and dominant
// speaker.
func WriteEnriched(w io.Writer, segments []timeline.Segment) error {
	return writeTable(w, EnrichedHeader, len(segments), func(i int) []string {
		return enrichedRow(segments[i])
	})
}

// WriteLabeled writes labeled segments.
func WriteLabeled(w io.Writer, labeled []timeline.LabeledSegment) error {
	return writeTable(w, LabeledHeader, len(labeled), func(i int) []string {
		return append(enrichedRow(labeled[i].Segment), string(labeled[i].Label))
	})
}

// WriteRoles writes the speaker role table, one row per speaker in the given
// order.
func WriteRoles(w io.Writer, stats []roles.SpeakerStats) error {
	return writeTable(w, RolesHeader, len(stats), func(i int) []string {
		s := stats[i]
		return []string{
			s.Speaker,
			string(s.Role),
			formatFloat(s.TotalDuration, 2),
			FormatPercent(s.RatioToDJ),
			strconv.Itoa(s.Interactions),
		}
	})
}

// WriteBlocks writes the block table.
func WriteBlocks(w io.Writer, blocks []timeline.Block) error {
	return writeTable(w, BlocksHeader, len(blocks), func(i int) []string {
		b := blocks[i]
		return []string{
			string(b.Type),
			formatFloat(b.Start, 2),
			formatFloat(b.End, 2),
			formatFloat(b.Duration, 2),
			strconv.Itoa(b.SegmentCount),
			strconv.Itoa(len(b.Speakers)),
			strings.Join(b.Speakers, ","),
			b.Text,
		}
	})
}

// FormatPercent renders a ratio as a percentage with one decimal, e.g. "8.0%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

func enrichedRow(seg timeline.Segment) []string {
	dominant, _ := seg.DominantSpeaker()
	return []string{
		ingest.FormatSeconds(seg.Start),
		ingest.FormatSeconds(seg.End),
		ingest.FormatSeconds(seg.Duration()),
		string(seg.Type),
		seg.Transcript,
		overlap.FormatAnnotation(seg.Overlaps),
		dominant,
	}
}

func writeTable(w io.Writer, header []string, n int, row func(i int) []string) error {
	if _, err := w.Write(bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// render runs a table writer into memory.
func render(write func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64, decimals int) string {
	scale := math.Pow10(decimals)
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', -1, 64)
}
