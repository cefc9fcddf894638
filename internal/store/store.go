package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"radiotimeline/internal/roles"
	"radiotimeline/internal/timeline"
)

// Run is one persisted classification of a broadcast date.
type Run struct {
	ID            string               `json:"id"`
	Date          string               `json:"broadcast_date"`
	StartedAt     time.Time            `json:"started_at"`
	FinishedAt    time.Time            `json:"finished_at"`
	SegmentCount  int                  `json:"segment_count"`
	TurnCount     int                  `json:"turn_count"`
	MalformedRows int                  `json:"malformed_rows"`
	DJ            string               `json:"dj,omitempty"`
	Guest         string               `json:"guest,omitempty"`
	Roles         []roles.SpeakerStats `json:"roles"`
	Blocks        []timeline.Block     `json:"blocks"`
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the database at path and applies
// migrations. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores run, replacing any previous run for the same date. An empty
// ID is filled with a new UUID. The stored run is returned.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.Date == "" {
		return Run{}, errors.New("run date is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE broadcast_date = ?`, run.Date); err != nil {
		return Run{}, fmt.Errorf("replace run: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, broadcast_date, started_at, finished_at,
            segment_count, turn_count, malformed_rows, dj_speaker, guest_speaker
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Date,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.SegmentCount,
		run.TurnCount,
		run.MalformedRows,
		nullableString(run.DJ),
		nullableString(run.Guest),
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for i, r := range run.Roles {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO speaker_roles (
                run_id, position, speaker, role, total_duration, ratio_to_dj, interaction_count
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, r.Speaker, string(r.Role), r.TotalDuration, r.RatioToDJ, r.Interactions,
		); err != nil {
			return Run{}, fmt.Errorf("insert speaker role: %w", err)
		}
	}

	for i, b := range run.Blocks {
		speakers, err := json.Marshal(nonNil(b.Speakers))
		if err != nil {
			return Run{}, fmt.Errorf("marshal block speakers: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO blocks (
                run_id, position, block_type, start_seconds, end_seconds,
                duration, segment_count, speakers_json, text
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, string(b.Type), b.Start, b.End, b.Duration, b.SegmentCount, string(speakers), b.Text,
		); err != nil {
			return Run{}, fmt.Errorf("insert block: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

const runColumns = "id, broadcast_date, started_at, finished_at, segment_count, turn_count, malformed_rows, dj_speaker, guest_speaker"

// LatestRun returns the stored run for date with its roles and blocks, or
// nil when the date has no run.
func (s *Store) LatestRun(ctx context.Context, date string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE broadcast_date = ?`, date)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if run.Roles, err = s.loadRoles(ctx, run.ID); err != nil {
		return nil, err
	}
	if run.Blocks, err = s.loadBlocks(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns run headers, newest broadcast date first. Roles and
// blocks are not loaded.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY broadcast_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *Store) loadRoles(ctx context.Context, runID string) ([]roles.SpeakerStats, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT speaker, role, total_duration, ratio_to_dj, interaction_count
         FROM speaker_roles WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load speaker roles: %w", err)
	}
	defer rows.Close()

	var out []roles.SpeakerStats
	for rows.Next() {
		var (
			st   roles.SpeakerStats
			role string
		)
		if err := rows.Scan(&st.Speaker, &role, &st.TotalDuration, &st.RatioToDJ, &st.Interactions); err != nil {
			return nil, fmt.Errorf("scan speaker role: %w", err)
		}
		st.Role = timeline.Role(role)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) loadBlocks(ctx context.Context, runID string) ([]timeline.Block, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT block_type, start_seconds, end_seconds, duration, segment_count, speakers_json, text
         FROM blocks WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	defer rows.Close()

	var out []timeline.Block
	for rows.Next() {
		var (
			b        timeline.Block
			typ      string
			speakers string
		)
		if err := rows.Scan(&typ, &b.Start, &b.End, &b.Duration, &b.SegmentCount, &speakers, &b.Text); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		b.Type = timeline.BlockType(typ)
		if err := json.Unmarshal([]byte(speakers), &b.Speakers); err != nil {
			return nil, fmt.Errorf("decode block speakers: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		startedRaw string
		finishRaw  string
		dj         sql.NullString
		guest      sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Date,
		&startedRaw,
		&finishRaw,
		&run.SegmentCount,
		&run.TurnCount,
		&run.MalformedRows,
		&dj,
		&guest,
	); err != nil {
		return nil, err
	}
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishRaw)
	run.DJ = dj.String
	run.Guest = guest.String
	return &run, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
