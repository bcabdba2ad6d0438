// Package repository defines the report store interface and errors.
package repository

import (
	"context"

	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/report"
	"github.com/okian/depthchart/internal/domain/types"
)

// Store provides access to published pipeline reports.
type Store interface {
	// Put publishes r and makes it the latest report.
	Put(ctx context.Context, r *report.Report) error

	// Latest returns the most recently published report.
	// Returns ErrNotFound if nothing was published.
	Latest(ctx context.Context) (*report.Report, error)

	// Get returns the report with the given run id.
	Get(ctx context.Context, runID string) (*report.Report, error)

	// Leaderboard returns the top-n players of role in the latest report,
	// ordered by fantasy points per game desc.
	Leaderboard(ctx context.Context, role model.Role, n int) ([]types.Entry, error)

	// Rank returns a player's position in the latest report's role ranking.
	Rank(ctx context.Context, role model.Role, player string) (types.Entry, error)

	// Count returns the number of reports kept.
	Count(ctx context.Context) int
}
