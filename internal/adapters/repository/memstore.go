package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/report"
	"github.com/okian/depthchart/internal/domain/types"
	"github.com/okian/depthchart/pkg/metrics"
)

const defaultMaxReports = 16

// Snapshot is the precomputed ranking view of one report. It is built
// once on Put and never modified.
type Snapshot struct {
	Report *report.Report
	// Boards holds each role's players ordered by FPPG desc, then name asc.
	Boards map[model.Role][]types.Entry
	// RankByPlayer maps a lower-cased player name to its index in Boards.
	RankByPlayer map[model.Role]map[string]int
}

// MemoryStore is an in-memory, bounded Store.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]*Snapshot
	order      []string // run ids, oldest first
	maxReports int

	latest atomic.Pointer[Snapshot]
}

// NewMemoryStore constructs a report store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:       make(map[string]*Snapshot),
		maxReports: defaultMaxReports,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, r *report.Report) error {
	if r == nil {
		return ErrNilReport
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("put report: %w", err)
	}
	snap := buildSnapshot(r)

	s.mu.Lock()
	if _, exists := s.byID[r.RunID]; !exists {
		s.order = append(s.order, r.RunID)
	}
	s.byID[r.RunID] = snap
	for len(s.order) > s.maxReports {
		delete(s.byID, s.order[0])
		s.order = append(s.order[:0], s.order[1:]...)
	}
	count := len(s.order)
	s.latest.Store(snap)
	s.mu.Unlock()

	metrics.UpdateReportsStored(count)
	return nil
}

// Latest implements Store.
func (s *MemoryStore) Latest(_ context.Context) (*report.Report, error) {
	snap := s.latest.Load()
	if snap == nil {
		return nil, fmt.Errorf("latest report: %w", ErrNotFound)
	}
	return snap.Report, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, runID string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.byID[runID]
	if !ok {
		return nil, fmt.Errorf("report %s: %w", runID, ErrNotFound)
	}
	return snap.Report, nil
}

// Leaderboard implements Store.
func (s *MemoryStore) Leaderboard(_ context.Context, role model.Role, n int) ([]types.Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	snap := s.latest.Load()
	if snap == nil {
		return nil, fmt.Errorf("latest report: %w", ErrNotFound)
	}
	board := snap.Boards[role]
	if n > len(board) {
		n = len(board)
	}
	out := make([]types.Entry, n)
	copy(out, board[:n])
	return out, nil
}

// Rank implements Store.
func (s *MemoryStore) Rank(_ context.Context, role model.Role, player string) (types.Entry, error) {
	snap := s.latest.Load()
	if snap == nil {
		return types.Entry{}, fmt.Errorf("latest report: %w", ErrNotFound)
	}
	i, ok := snap.RankByPlayer[role][normalizeName(player)]
	if !ok {
		return types.Entry{}, fmt.Errorf("%s %q: %w", role, player, ErrNotFound)
	}
	return snap.Boards[role][i], nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func buildSnapshot(r *report.Report) *Snapshot {
	snap := &Snapshot{
		Report:       r,
		Boards:       make(map[model.Role][]types.Entry, len(r.Derived)),
		RankByPlayer: make(map[model.Role]map[string]int, len(r.Derived)),
	}
	for role, subset := range r.Derived {
		board := make([]types.Entry, len(subset.Rows))
		for i, p := range subset.Rows {
			board[i] = types.Entry{Player: p.Player, Team: p.Team, Role: string(role), Score: p.FantasyPointsPerGame}
		}
		sort.SliceStable(board, func(i, j int) bool {
			if board[i].Score != board[j].Score {
				return board[i].Score > board[j].Score
			}
			return board[i].Player < board[j].Player
		})

		ranks := make(map[string]int, len(board))
		for i := range board {
			board[i].Rank = i + 1
			key := normalizeName(board[i].Player)
			if _, seen := ranks[key]; !seen {
				ranks[key] = i
			}
		}
		snap.Boards[role] = board
		snap.RankByPlayer[role] = ranks
	}
	return snap
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
