package ports

import (
	"context"
	"io"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
)

// StatsService derives every aggregate from the current ledger on each
// call; there is no caching layer between it and the repository.
type StatsService interface {
	Totals(ctx context.Context, grantID string) (*domain.GrantTotals, error)
	Ratio(ctx context.Context, grantID string) (*domain.GrantRatio, error)
	Top(ctx context.Context, limit int) ([]domain.GrantTotals, error)
	ResearcherSummary(ctx context.Context, researcherID string) (*domain.ResearcherSummary, error)
	Trend(ctx context.Context, grantID string) ([]domain.TrendBucket, error)
	ExportAll(ctx context.Context) ([]domain.Vote, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Health(ctx context.Context) (*domain.HealthStats, error)
}
