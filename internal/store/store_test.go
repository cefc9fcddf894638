package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"radiotimeline/internal/roles"
	"radiotimeline/internal/store"
	"radiotimeline/internal/testsupport"
	"radiotimeline/internal/timeline"
)

func sampleRun(date string) store.Run {
	started := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	return store.Run{
		Date:          date,
		StartedAt:     started,
		FinishedAt:    started.Add(2 * time.Second),
		SegmentCount:  20,
		TurnCount:     18,
		MalformedRows: 1,
		DJ:            "SPEAKER_00",
		Guest:         "SPEAKER_01",
		Roles: []roles.SpeakerStats{
			{Speaker: "SPEAKER_00", Role: timeline.RoleDJ, TotalDuration: 240, RatioToDJ: 1},
			{Speaker: "SPEAKER_01", Role: timeline.RoleGuest, TotalDuration: 40, RatioToDJ: 40.0 / 240.0, Interactions: 8},
		},
		Blocks: []timeline.Block{
			{Type: timeline.BlockGuest, Start: 0, End: 280, Duration: 280, SegmentCount: 16, Speakers: []string{"SPEAKER_00", "SPEAKER_01"}, Text: "hi"},
			{Type: timeline.BlockMusic, Start: 281, End: 461, Duration: 180, SegmentCount: 1, Speakers: []string{}},
		},
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	versions, err := s.Versions(context.Background())
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if diff := cmp.Diff([]string{"001_initial"}, versions); diff != "" {
		t.Fatalf("versions mismatch (-want +got):\n%s", diff)
	}
	if s.Path() != cfg.DatabasePath() {
		t.Fatalf("path = %s, want %s", s.Path(), cfg.DatabasePath())
	}

	// Reopening must not re-apply migrations.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	again, err := store.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
}

func TestSaveAndLoadRun(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	saved, err := s.SaveRun(ctx, sampleRun("20240105"))
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated run id")
	}

	got, err := s.LatestRun(ctx, "20240105")
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored run")
	}
	if diff := cmp.Diff(saved, *got, cmpopts.EquateApprox(0, 1e-9), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("run mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRunReplacesSameDate(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first, err := s.SaveRun(ctx, sampleRun("20240105"))
	if err != nil {
		t.Fatal(err)
	}
	next := sampleRun("20240105")
	next.Blocks = next.Blocks[:1]
	next.Guest = ""
	second, err := s.SaveRun(ctx, next)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatal("expected a fresh run id")
	}

	got, err := s.LatestRun(ctx, "20240105")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != second.ID || len(got.Blocks) != 1 || got.Guest != "" {
		t.Fatalf("unexpected run after replace: %+v", got)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	for _, date := range []string{"20240103", "20240105", "20240104"} {
		if _, err := s.SaveRun(ctx, sampleRun(date)); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, r := range runs {
		dates = append(dates, r.Date)
		if r.Roles != nil || r.Blocks != nil {
			t.Fatalf("list should not load details: %+v", r)
		}
	}
	if diff := cmp.Diff([]string{"20240105", "20240104", "20240103"}, dates); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLatestRunMissing(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	got, err := s.LatestRun(context.Background(), "19990101")
	if err != nil || got != nil {
		t.Fatalf("expected nil run, got %+v err=%v", got, err)
	}
}

func TestSaveRunRequiresDate(t *testing.T) {
	s := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if _, err := s.SaveRun(context.Background(), store.Run{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()
}
