package main

import (
	"fmt"
	"strconv"
	"strings"

	"radiotimeline/internal/pipeline"
	"radiotimeline/internal/report"
	"radiotimeline/internal/roles"
	"radiotimeline/internal/store"
	"radiotimeline/internal/timeline"
)

const blockTextPreview = 48

func rolesView(stats []roles.SpeakerStats) tableView {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Speaker,
			string(s.Role),
			formatSeconds(s.TotalDuration),
			report.FormatPercent(s.RatioToDJ),
			strconv.Itoa(s.Interactions),
		})
	}
	return tableView{
		title:   "Speakers",
		headers: []string{"Speaker", "Role", "Duration", "Of DJ", "Interactions"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
		rows:    rows,
		empty:   "No attributed speakers.",
	}
}

func blocksView(blocks []timeline.Block) tableView {
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []string{
			string(b.Type),
			formatClock(b.Start),
			formatClock(b.End),
			formatSeconds(b.Duration),
			strconv.Itoa(b.SegmentCount),
			strings.Join(b.Speakers, ","),
			preview(b.Text, blockTextPreview),
		})
	}
	return tableView{
		title:   "Blocks",
		headers: []string{"Type", "Start", "End", "Duration", "Segments", "Speakers", "Text"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
		rows:    rows,
		empty:   "No blocks.",
	}
}

func rangeView(summary pipeline.RangeSummary) tableView {
	rows := make([][]string, 0, len(summary.Days))
	for _, d := range summary.Days {
		blocks := ""
		if d.Status == pipeline.DayProcessed {
			blocks = strconv.Itoa(d.Blocks)
		}
		rows = append(rows, []string{d.Date, string(d.Status), blocks, d.Error})
	}
	return tableView{
		title:   fmt.Sprintf("Range %s - %s", summary.From, summary.To),
		headers: []string{"Date", "Status", "Blocks", "Error"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		rows:    rows,
	}
}

func runsView(runs []store.Run) tableView {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.Date,
			r.FinishedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(r.SegmentCount),
			r.DJ,
			r.Guest,
			strconv.Itoa(r.MalformedRows),
		})
	}
	return tableView{
		title:   "Stored runs",
		headers: []string{"Date", "Finished", "Segments", "DJ", "Guest", "Skipped rows"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight},
		rows:    rows,
		empty:   "No stored runs.",
	}
}

func dayResultLines(res pipeline.DayResult, colorize bool) []string {
	lines := renderSectionHeader("Broadcast "+res.Date, colorize)
	lines = append(lines,
		renderStatusLine("Run", statusInfo, res.RunID, colorize),
		renderStatusLine("Segments", statusInfo, fmt.Sprintf("%d segments, %d diarization turns", res.SegmentCount, res.TurnCount), colorize),
	)
	if res.ConvertedSRT {
		lines = append(lines, renderStatusLine("Segment table", statusInfo, "converted from SRT", colorize))
	}
	if res.MalformedRows > 0 {
		lines = append(lines, renderStatusLine("Skipped rows", statusWarn, strconv.Itoa(res.MalformedRows), colorize))
	}
	lines = append(lines, speakerLines(res.DJ, res.Guest, colorize)...)
	return lines
}

func speakerLines(dj, guest string, colorize bool) []string {
	var lines []string
	if dj == "" {
		lines = append(lines, renderStatusLine("DJ", statusWarn, "none (no attributed speech)", colorize))
	} else {
		lines = append(lines, renderStatusLine("DJ", statusOK, dj, colorize))
	}
	if guest == "" {
		lines = append(lines, renderStatusLine("Guest", statusInfo, "none", colorize))
	} else {
		lines = append(lines, renderStatusLine("Guest", statusOK, guest, colorize))
	}
	return lines
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "s"
}

// formatClock renders seconds since broadcast start as H:MM:SS.
func formatClock(v float64) string {
	total := int(v + 0.5)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
