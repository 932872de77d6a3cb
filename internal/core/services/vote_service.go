package services

import (
	"context"
	"time"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

type voteService struct {
	repo ports.VoteRepository
	now  func() time.Time
}

func NewVoteService(repo ports.VoteRepository) ports.VoteService {
	return &voteService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *voteService) Cast(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	if err := domain.ValidateGrantID(input.GrantID); err != nil {
		return nil, err
	}
	if err := domain.ValidateResearcherID(input.ResearcherID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAction(input.Action); err != nil {
		return nil, err
	}

	return s.repo.Upsert(ctx, input.GrantID, input.ResearcherID, domain.Action(input.Action), s.now().UTC())
}

func (s *voteService) Get(ctx context.Context, grantID, researcherID string) (*domain.Vote, error) {
	if err := domain.ValidateGrantID(grantID); err != nil {
		return nil, err
	}
	if err := domain.ValidateResearcherID(researcherID); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, grantID, researcherID)
}

func (s *voteService) Delete(ctx context.Context, grantID, researcherID string) error {
	if err := domain.ValidateGrantID(grantID); err != nil {
		return err
	}
	if err := domain.ValidateResearcherID(researcherID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, grantID, researcherID)
}

func (s *voteService) ResearcherVotes(ctx context.Context, researcherID string) ([]domain.ResearcherVote, error) {
	if err := domain.ValidateResearcherID(researcherID); err != nil {
		return nil, err
	}

	votes, err := s.repo.ListByResearcher(ctx, researcherID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ResearcherVote, 0, len(votes))
	for _, v := range votes {
		result = append(result, domain.ResearcherVote{
			GrantID: v.GrantID,
			Action:  v.Action,
		})
	}
	return result, nil
}
