package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"radiotimeline/internal/logging"
)

// DayStatus is the outcome of one date within a range.
type DayStatus string

const (
	DayProcessed DayStatus = "processed"
	DayFailed    DayStatus = "failed"
	DaySkipped   DayStatus = "skipped"
)

// DayOutcome records what happened to one date of a range.
type DayOutcome struct {
	Date   string    `json:"broadcast_date"`
	Status DayStatus `json:"status"`
	Blocks int       `json:"blocks,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// RangeSummary aggregates a range run.
type RangeSummary struct {
	From          string       `json:"from"`
	To            string       `json:"to"`
	Processed     int          `json:"processed"`
	Failed        int          `json:"failed"`
	Skipped       int          `json:"skipped"`
	MalformedRows int          `json:"malformed_rows"`
	Days          []DayOutcome `json:"days"`
}

// RunRange processes every date from from to to inclusive. Dates without a
// broadcast directory are skipped. A failed day is recorded and the range
// continues; the returned error joins every day failure. Cancellation is
// checked between days.
func (r *Runner) RunRange(ctx context.Context, from, to string) (RangeSummary, error) {
	start, err := ParseDate(from)
	if err != nil {
		return RangeSummary{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return RangeSummary{}, err
	}
	if end.Before(start) {
		return RangeSummary{}, fmt.Errorf("range end %s is before start %s", to, from)
	}

	summary := RangeSummary{From: from, To: to}
	var errs []error
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		date := day.Format(DateLayout)
		if !dirExists(filepath.Join(r.cfg.Paths.BaseDir, date)) {
			r.logger.Debug("no broadcast directory; skipping", logging.String(logging.FieldBroadcastDate, date))
			summary.Skipped++
			summary.Days = append(summary.Days, DayOutcome{Date: date, Status: DaySkipped})
			continue
		}

		res, err := r.RunDay(ctx, date)
		summary.MalformedRows += res.MalformedRows
		if err != nil {
			r.logger.Error("broadcast run failed",
				logging.String(logging.FieldBroadcastDate, date),
				logging.Error(err),
			)
			summary.Failed++
			summary.Days = append(summary.Days, DayOutcome{Date: date, Status: DayFailed, Error: err.Error()})
			errs = append(errs, fmt.Errorf("%s: %w", date, err))
			continue
		}
		summary.Processed++
		summary.Days = append(summary.Days, DayOutcome{Date: date, Status: DayProcessed, Blocks: len(res.Blocks)})
	}

	r.logger.Info("range completed",
		logging.String("from", from),
		logging.String("to", to),
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("malformed_rows", summary.MalformedRows),
	)
	return summary, errors.Join(errs...)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
