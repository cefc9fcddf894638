package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"radiotimeline/internal/blocks"
	"radiotimeline/internal/config"
	"radiotimeline/internal/fileutil"
	"radiotimeline/internal/ingest"
	"radiotimeline/internal/labeling"
	"radiotimeline/internal/logging"
	"radiotimeline/internal/overlap"
	"radiotimeline/internal/report"
	"radiotimeline/internal/roles"
	"radiotimeline/internal/store"
	"radiotimeline/internal/timeline"
)

// ErrLocked indicates another process is working on the same broadcast day.
var ErrLocked = errors.New("broadcast day is locked by another process")

// DayResult summarizes one processed broadcast day.
type DayResult struct {
	Date          string                 `json:"broadcast_date"`
	RunID         string                 `json:"run_id"`
	ConvertedSRT  bool                   `json:"converted_srt,omitempty"`
	SegmentCount  int                    `json:"segment_count"`
	TurnCount     int                    `json:"turn_count"`
	MalformedRows int                    `json:"malformed_rows"`
	Issues        ingest.Issues          `json:"issues,omitempty"`
	Overlap       overlap.Stats          `json:"overlap"`
	DJ            string                 `json:"dj,omitempty"`
	Guest         string                 `json:"guest,omitempty"`
	Roles         []roles.SpeakerStats   `json:"roles"`
	Labels        map[timeline.Label]int `json:"labels"`
	Blocks        []timeline.Block       `json:"blocks"`
	Outputs       report.Paths           `json:"outputs"`
	Stored        bool                   `json:"stored"`
	Elapsed       time.Duration          `json:"elapsed_ns"`
}

// Runner executes the classification pipeline.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	now    func() time.Time
}

// NewRunner constructs a Runner. A nil store disables persistence.
func NewRunner(cfg *config.Config, logger *slog.Logger, st *store.Store) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		store:  st,
		now:    time.Now,
	}
}

// RunDay processes one broadcast date.
func (r *Runner) RunDay(ctx context.Context, date string) (DayResult, error) {
	if _, err := ParseDate(date); err != nil {
		return DayResult{}, err
	}
	in := InputsFor(r.cfg, date)
	if info, err := os.Stat(in.Dir); err != nil || !info.IsDir() {
		return DayResult{}, &ingest.MissingInputError{Date: date, Artifact: "broadcast directory", Path: in.Dir}
	}

	lock := flock.New(filepath.Join(in.Dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return DayResult{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return DayResult{}, fmt.Errorf("%s: %w", date, ErrLocked)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	started := r.now()
	res := DayResult{Date: date, RunID: uuid.NewString(), Outputs: OutputsFor(r.cfg, date)}
	ctx = logging.WithBroadcast(ctx, date, res.RunID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("broadcast run started", logging.String("dir", in.Dir))

	var (
		segments []timeline.Segment
		turns    []timeline.DiarizationTurn
		resolved []timeline.Segment
		inferred roles.Result
		labeled  []timeline.LabeledSegment
		built    []timeline.Block
	)

	err = r.stage(ctx, "ingest", func(ctx context.Context, logger *slog.Logger) error {
		converted, err := r.convertSRTIfNeeded(in, date, logger)
		if err != nil {
			return err
		}
		res.ConvertedSRT = converted

		segs, segIssues, err := ingest.LoadSegments(date, in.Segments)
		if err != nil {
			return err
		}
		ts, turnIssues, err := ingest.LoadDiarization(date, in.Diarization)
		if err != nil {
			return err
		}
		segments, turns = segs, ts
		res.Issues = append(append(res.Issues, segIssues...), turnIssues...)
		for _, issue := range res.Issues {
			logger.Debug("skipped malformed row",
				logging.String("source", issue.Source),
				logging.Int("line", issue.Line),
				logging.String("reason", issue.Reason),
			)
		}
		res.SegmentCount = len(segments)
		res.TurnCount = len(turns)
		res.MalformedRows = len(res.Issues)
		attrs := []logging.Attr{
			logging.Int("segments", res.SegmentCount),
			logging.Int("turns", res.TurnCount),
			logging.Int("malformed_rows", res.MalformedRows),
		}
		if res.MalformedRows > 0 {
			logger.Warn("inputs loaded with skipped rows", logging.Args(attrs...)...)
		} else {
			logger.Info("inputs loaded", logging.Args(attrs...)...)
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	err = r.stage(ctx, "classify", func(ctx context.Context, logger *slog.Logger) error {
		resolved, res.Overlap = overlap.NewResolver(logger).Resolve(segments, turns)
		inferred = roles.New(roleOptions(r.cfg), logger).Infer(resolved)
		labeled = labeling.NewAssigner(labelOptions(r.cfg), logger).Assign(resolved, inferred.Roles)
		built = blocks.NewAssembler(blockOptions(r.cfg), logger).Assemble(resolved, inferred.Roles)

		res.DJ, res.Guest = inferred.DJ, inferred.Guest
		res.Roles = inferred.Stats
		res.Blocks = built
		res.Labels = make(map[timeline.Label]int)
		for _, l := range labeled {
			res.Labels[l.Label]++
		}
		if inferred.DJ == "" {
			logger.Warn("no attributable speech; every speaker is treated as an ad speaker",
				logging.Alert("no_dj"),
			)
		}
		logger.Info("broadcast classified",
			logging.String("dj", inferred.DJ),
			logging.String("guest", inferred.Guest),
			logging.Int("speakers", inferred.Roles.Len()),
			logging.Int("blocks", len(built)),
		)
		return ctx.Err()
	})
	if err != nil {
		return res, err
	}

	err = r.stage(ctx, "write", func(ctx context.Context, logger *slog.Logger) error {
		bundle := report.Bundle{Segments: resolved, Roles: inferred.Stats, Labeled: labeled, Blocks: built}
		if err := report.WriteAll(res.Outputs, bundle); err != nil {
			return err
		}
		logger.Debug("outputs written", logging.String("blocks_csv", res.Outputs.Blocks))
		return nil
	})
	if err != nil {
		return res, err
	}

	if r.store != nil {
		err = r.stage(ctx, "store", func(ctx context.Context, logger *slog.Logger) error {
			_, err := r.store.SaveRun(ctx, store.Run{
				ID:            res.RunID,
				Date:          date,
				StartedAt:     started,
				FinishedAt:    r.now(),
				SegmentCount:  res.SegmentCount,
				TurnCount:     res.TurnCount,
				MalformedRows: res.MalformedRows,
				DJ:            res.DJ,
				Guest:         res.Guest,
				Roles:         res.Roles,
				Blocks:        res.Blocks,
			})
			return err
		})
		if err != nil {
			return res, err
		}
		res.Stored = true
	}

	res.Elapsed = r.now().Sub(started)
	logger.Info("broadcast run completed", logging.Duration("elapsed", res.Elapsed))
	return res, nil
}

// stage runs fn with stage-scoped logging and timing.
func (r *Runner) stage(ctx context.Context, name string, fn func(context.Context, *slog.Logger) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = logging.WithStage(ctx, name)
	logger := logging.WithContext(ctx, r.logger)
	start := time.Now()
	logger.Debug("stage started")
	if err := fn(ctx, logger); err != nil {
		logger.Error("stage failed", logging.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("stage completed", logging.Duration("elapsed", time.Since(start)))
	return nil
}

// convertSRTIfNeeded writes the segment table from the SRT transcript when
// the table is absent and conversion is enabled.
func (r *Runner) convertSRTIfNeeded(in Inputs, date string, logger *slog.Logger) (bool, error) {
	if !r.cfg.SRT.Enabled {
		return false, nil
	}
	if _, err := os.Stat(in.Segments); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	f, err := os.Open(in.SRT)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open srt: %w", err)
	}
	defer f.Close()

	segments, issues, err := ingest.ConvertSRT(f, srtOptions(r.cfg))
	if err != nil {
		return false, err
	}
	if err := fileutil.WriteAtomic(in.Segments, 0o644, func(w io.Writer) error {
		return ingest.WriteSegments(w, segments)
	}); err != nil {
		return false, fmt.Errorf("write converted segment table: %w", err)
	}
	logger.Info("segment table converted from srt",
		logging.String("srt", in.SRT),
		logging.Int("segments", len(segments)),
		logging.Int("skipped_cues", issues.Len()),
	)
	return true, nil
}

func roleOptions(cfg *config.Config) roles.Options {
	return roles.Options{
		Window:               cfg.Roles.Window,
		GuestMinInteractions: cfg.Roles.GuestMinInteractions,
		GuestDominance:       cfg.Roles.GuestDominance,
	}
}

func labelOptions(cfg *config.Config) labeling.Options {
	return labeling.Options{
		GuestMinRate:  cfg.Labels.GuestMinRate,
		GuestMinCount: cfg.Labels.GuestMinCount,
		ADMinSeconds:  cfg.Labels.ADMinSeconds,
		ADMaxSeconds:  cfg.Labels.ADMaxSeconds,
	}
}

func blockOptions(cfg *config.Config) blocks.Options {
	return blocks.Options{
		MusicMinSeconds: cfg.Blocks.MusicMinSeconds,
		MusicRatio:      cfg.Blocks.MusicRatio,
	}
}

func srtOptions(cfg *config.Config) ingest.SRTOptions {
	return ingest.SRTOptions{
		MusicMinSeconds:    cfg.SRT.MusicMinSeconds,
		GapMusicMinSeconds: cfg.SRT.GapMusicMinSeconds,
	}
}
