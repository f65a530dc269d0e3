package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestStorage(t *testing.T) *RunStorage {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := NewRunStorage(filepath.Join(t.TempDir(), "ledger", "runs.db"), logger)
	if err != nil {
		t.Fatalf("NewRunStorage() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRunStorage_SaveAndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	started := time.Date(2024, 1, 1, 9, 0, 0, 123456789, time.UTC)

	tests := []struct {
		name string
		run  *RunRecord
	}{
		{
			name: "succeeded run",
			run: &RunRecord{
				ID:            "run-ok",
				StartedAt:     started,
				FinishedAt:    started.Add(3 * time.Second),
				Status:        RunStatusSucceeded,
				LocationIDs:   []string{"352409", "310013"},
				Rows:          80,
				RawPath:       "data/raw_data.csv",
				ProcessedPath: "data/data_processed.csv",
			},
		},
		{
			name: "failed run without locations",
			run: &RunRecord{
				ID:           "run-failed",
				StartedAt:    started,
				FinishedAt:   started,
				Status:       RunStatusFailed,
				FailedStage:  "resolve",
				ErrorKind:    "invalid_input",
				ErrorMessage: "no location ids to fetch",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SaveRun(ctx, tt.run); err != nil {
				t.Fatalf("SaveRun() error = %v", err)
			}

			got, err := s.GetRun(ctx, tt.run.ID)
			if err != nil {
				t.Fatalf("GetRun() error = %v", err)
			}
			if diff := cmp.Diff(tt.run, got); diff != "" {
				t.Errorf("GetRun() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunStorage_GetRun_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestRunStorage_ListRuns(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		run := &RunRecord{
			ID:         id,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
			Status:     RunStatusSucceeded,
		}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}

	var gotIDs []string
	for _, r := range runs {
		gotIDs = append(gotIDs, r.ID)
	}
	if diff := cmp.Diff([]string{"third", "second"}, gotIDs); diff != "" {
		t.Errorf("ListRuns() ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStorage_SaveRun_Replaces(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	run := &RunRecord{ID: "same", StartedAt: now, FinishedAt: now, Status: RunStatusFailed}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	run.Status = RunStatusSucceeded
	run.Rows = 4
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Status != RunStatusSucceeded || runs[0].Rows != 4 {
		t.Errorf("ListRuns() = %+v, want single succeeded run with 4 rows", runs)
	}
}
