package ports

import (
	"context"
	"time"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
)

type VoteRepository interface {
	// Upsert creates the row for (grantID, researcherID) or replaces its
	// action, setting the timestamp to now in both cases.
	Upsert(ctx context.Context, grantID, researcherID string, action domain.Action, now time.Time) (*domain.Vote, error)
	// Get returns (nil, nil) when no vote exists for the key; absence is
	// not an error.
	Get(ctx context.Context, grantID, researcherID string) (*domain.Vote, error)
	// Delete returns domain.ErrVoteNotFound when no row exists for the key.
	Delete(ctx context.Context, grantID, researcherID string) error
	ListAll(ctx context.Context) ([]domain.Vote, error)
	ListByGrant(ctx context.Context, grantID string) ([]domain.Vote, error)
	ListByResearcher(ctx context.Context, researcherID string) ([]domain.Vote, error)
}

type CastVoteInput struct {
	GrantID      string
	ResearcherID string
	Action       string
}

type VoteService interface {
	Cast(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
	Get(ctx context.Context, grantID, researcherID string) (*domain.Vote, error)
	Delete(ctx context.Context, grantID, researcherID string) error
	ResearcherVotes(ctx context.Context, researcherID string) ([]domain.ResearcherVote, error)
}
