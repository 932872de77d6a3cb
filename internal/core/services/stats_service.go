package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

// DefaultTopLimit is the ranking size used when the caller does not ask
// for a specific one.
const DefaultTopLimit = 10

// recentVotesLimit caps ResearcherSummary.RecentVotes.
const recentVotesLimit = 5

type statsService struct {
	repo ports.VoteRepository
}

func NewStatsService(repo ports.VoteRepository) ports.StatsService {
	return &statsService{
		repo: repo,
	}
}

func (s *statsService) Totals(ctx context.Context, grantID string) (*domain.GrantTotals, error) {
	if err := domain.ValidateGrantID(grantID); err != nil {
		return nil, err
	}

	votes, err := s.repo.ListByGrant(ctx, grantID)
	if err != nil {
		return nil, err
	}

	totals := &domain.GrantTotals{GrantID: grantID}
	for _, v := range votes {
		if v.Action == domain.ActionLike {
			totals.Likes++
		} else {
			totals.Dislikes++
		}
	}
	return totals, nil
}

func (s *statsService) Ratio(ctx context.Context, grantID string) (*domain.GrantRatio, error) {
	totals, err := s.Totals(ctx, grantID)
	if err != nil {
		return nil, err
	}

	ratio := &domain.GrantRatio{
		GrantID:  grantID,
		Likes:    totals.Likes,
		Dislikes: totals.Dislikes,
	}

	// Both percentages stay 0.0 on an empty grant; the dislike side is
	// derived from the like side so the two always sum to exactly 100.
	total := totals.Likes + totals.Dislikes
	if total > 0 {
		ratio.LikePct = float64(totals.Likes) / float64(total) * 100
		ratio.DislikePct = 100 - ratio.LikePct
	}
	return ratio, nil
}

func (s *statsService) Top(ctx context.Context, limit int) ([]domain.GrantTotals, error) {
	if limit < 1 {
		return nil, domain.ErrInvalidLimit
	}

	votes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byGrant := make(map[string]*domain.GrantTotals)
	for _, v := range votes {
		t, ok := byGrant[v.GrantID]
		if !ok {
			t = &domain.GrantTotals{GrantID: v.GrantID}
			byGrant[v.GrantID] = t
		}
		if v.Action == domain.ActionLike {
			t.Likes++
		} else {
			t.Dislikes++
		}
	}

	ranking := make([]domain.GrantTotals, 0, len(byGrant))
	for _, t := range byGrant {
		ranking = append(ranking, *t)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Likes != ranking[j].Likes {
			return ranking[i].Likes > ranking[j].Likes
		}
		return ranking[i].GrantID < ranking[j].GrantID
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

func (s *statsService) ResearcherSummary(ctx context.Context, researcherID string) (*domain.ResearcherSummary, error) {
	if err := domain.ValidateResearcherID(researcherID); err != nil {
		return nil, err
	}

	votes, err := s.repo.ListByResearcher(ctx, researcherID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ResearcherSummary{
		ResearcherID: researcherID,
		TotalVotes:   int64(len(votes)),
	}
	for _, v := range votes {
		if v.Action == domain.ActionLike {
			summary.Likes++
		} else {
			summary.Dislikes++
		}
	}

	sort.Slice(votes, func(i, j int) bool {
		if !votes[i].UpdatedAt.Equal(votes[j].UpdatedAt) {
			return votes[i].UpdatedAt.After(votes[j].UpdatedAt)
		}
		return votes[i].GrantID < votes[j].GrantID
	})
	if len(votes) > recentVotesLimit {
		votes = votes[:recentVotesLimit]
	}
	summary.RecentVotes = votes

	return summary, nil
}

// Trend buckets a grant's current votes by the UTC calendar day of their
// last write. A vote keeps a single timestamp, so updating it moves the
// vote into today's bucket and out of its original one; this is
// current-state-by-last-write-day, not a historical event log.
func (s *statsService) Trend(ctx context.Context, grantID string) ([]domain.TrendBucket, error) {
	if err := domain.ValidateGrantID(grantID); err != nil {
		return nil, err
	}

	votes, err := s.repo.ListByGrant(ctx, grantID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*domain.TrendBucket)
	for _, v := range votes {
		day := v.UpdatedAt.UTC().Format(time.DateOnly)
		b, ok := byDay[day]
		if !ok {
			b = &domain.TrendBucket{Date: day}
			byDay[day] = b
		}
		if v.Action == domain.ActionLike {
			b.Likes++
		} else {
			b.Dislikes++
		}
	}

	trend := make([]domain.TrendBucket, 0, len(byDay))
	for _, b := range byDay {
		trend = append(trend, *b)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})
	return trend, nil
}

func (s *statsService) ExportAll(ctx context.Context) ([]domain.Vote, error) {
	votes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if votes == nil {
		votes = []domain.Vote{}
	}
	return votes, nil
}

func (s *statsService) ExportCSV(ctx context.Context, w io.Writer) error {
	votes, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"grant_id", "researcher_id", "action", "timestamp"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, v := range votes {
		record := []string{v.GrantID, v.ResearcherID, string(v.Action), v.UpdatedAt.UTC().Format(time.RFC3339)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *statsService) Health(ctx context.Context) (*domain.HealthStats, error) {
	votes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.HealthStats{
		TotalVotes: int64(len(votes)),
	}

	grants := make(map[string]int64)
	researchers := make(map[string]struct{})
	var last time.Time
	for _, v := range votes {
		if _, ok := grants[v.GrantID]; !ok {
			grants[v.GrantID] = 0
		}
		if v.Action == domain.ActionLike {
			grants[v.GrantID]++
		}
		researchers[v.ResearcherID] = struct{}{}
		if v.UpdatedAt.After(last) {
			last = v.UpdatedAt
		}
	}

	stats.UniqueGrants = int64(len(grants))
	stats.UniqueResearchers = int64(len(researchers))
	if !last.IsZero() {
		t := last
		stats.LastVoteAt = &t
	}

	var topLikes int64 = -1
	for g, likes := range grants {
		if likes > topLikes || (likes == topLikes && g < stats.TopGrant) {
			stats.TopGrant = g
			topLikes = likes
		}
	}
	return stats, nil
}
