package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/report"
)

func testReport(runID string, fppg ...float64) *report.Report {
	rows := make([]model.ScoredPlayer, len(fppg))
	for i, v := range fppg {
		rows[i] = model.ScoredPlayer{
			PlayerSeasonRecord: model.PlayerSeasonRecord{Player: fmt.Sprintf("Player %d", i), Team: "KAN", Games: 16},
			Derived:            model.Derived{FantasyPointsPerGame: v},
		}
	}
	return &report.Report{
		RunID: runID,
		Derived: map[model.Role]model.PositionSubset{
			model.RoleWR: {Role: model.RoleWR, Rows: rows},
		},
	}
}

func TestMemoryStore_Empty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if _, err := store.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Leaderboard(ctx, model.RoleWR, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, nil); !errors.Is(err, ErrNilReport) {
		t.Errorf("expected ErrNilReport, got %v", err)
	}
}

func TestMemoryStore_Leaderboard(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, testReport("run-1", 10, 30, 20, 20)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := store.Leaderboard(ctx, model.RoleWR, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"Player 1", "Player 2", "Player 3"}
	for i, e := range entries {
		if e.Player != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], e.Player)
		}
		if e.Rank != i+1 {
			t.Errorf("entry %d: expected rank %d, got %d", i, i+1, e.Rank)
		}
	}

	all, err := store.Leaderboard(ctx, model.RoleWR, 100)
	if err != nil || len(all) != 4 {
		t.Errorf("expected all 4 entries, got %d (%v)", len(all), err)
	}

	empty, err := store.Leaderboard(ctx, model.RoleTE, 10)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty board for missing role, got %d (%v)", len(empty), err)
	}

	if _, err := store.Leaderboard(ctx, model.RoleWR, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}

	// Callers get a copy.
	entries[0].Player = "mutated"
	again, _ := store.Leaderboard(ctx, model.RoleWR, 1)
	if again[0].Player != "Player 1" {
		t.Errorf("store leaked its board: %s", again[0].Player)
	}
}

func TestMemoryStore_Rank(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Put(ctx, testReport("run-1", 5, 15))

	entry, err := store.Rank(ctx, model.RoleWR, "  player 0 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Rank != 2 || entry.Score != 5 {
		t.Errorf("expected rank 2 score 5, got rank %d score %f", entry.Rank, entry.Score)
	}

	if _, err := store.Rank(ctx, model.RoleWR, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxReports(2))

	for i := 1; i <= 3; i++ {
		if err := store.Put(ctx, testReport(fmt.Sprintf("run-%d", i), float64(i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if _, err := store.Get(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected run-1 evicted, got %v", err)
	}
	r, err := store.Get(ctx, "run-2")
	if err != nil || r.RunID != "run-2" {
		t.Errorf("expected run-2, got %v (%v)", r, err)
	}
	latest, _ := store.Latest(ctx)
	if latest.RunID != "run-3" {
		t.Errorf("expected latest run-3, got %s", latest.RunID)
	}
}

func TestMemoryStore_EvictionCompactsOrder(t *testing.T) {
	ctx := context.Background()
	const maxReports = 3
	store := NewMemoryStore(WithMaxReports(maxReports))

	for i := 1; i <= 100; i++ {
		if err := store.Put(ctx, testReport(fmt.Sprintf("run-%d", i), float64(i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(store.order) != maxReports {
		t.Fatalf("expected %d run ids, got %d", maxReports, len(store.order))
	}
	if c := cap(store.order); c > 2*maxReports {
		t.Errorf("expected order to reuse its backing array, cap grew to %d", c)
	}
	for i, want := range []string{"run-98", "run-99", "run-100"} {
		if store.order[i] != want {
			t.Errorf("order[%d]: expected %s, got %s", i, want, store.order[i])
		}
	}
	for _, id := range []string{"run-1", "run-50", "run-97"} {
		if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected %s evicted, got %v", id, err)
		}
	}
	if len(store.byID) != maxReports {
		t.Errorf("expected %d stored reports, got %d", maxReports, len(store.byID))
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxReports(4))
	_ = store.Put(ctx, testReport("seed", 1, 2, 3))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Put(ctx, testReport(fmt.Sprintf("run-%d", i), 1, 2, 3))
		}(i)
		go func() {
			defer wg.Done()
			if _, err := store.Leaderboard(ctx, model.RoleWR, 2); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if count := store.Count(ctx); count != 4 {
		t.Errorf("expected count 4, got %d", count)
	}
}

func TestMemoryStore_CancelledPut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	if err := store.Put(ctx, testReport("run-1", 1)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
