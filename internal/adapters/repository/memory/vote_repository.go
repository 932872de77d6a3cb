// Package memory holds an in-memory vote ledger with the same contract as
// the postgres adapter. It backs local development without a database and
// the service-level tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

type voteKey struct {
	grantID      string
	researcherID string
}

type voteRepository struct {
	mu    sync.RWMutex
	votes map[voteKey]domain.Vote
}

func NewVoteRepository() ports.VoteRepository {
	return &voteRepository{
		votes: make(map[voteKey]domain.Vote),
	}
}

func (r *voteRepository) Upsert(_ context.Context, grantID, researcherID string, action domain.Action, now time.Time) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vote := domain.Vote{
		GrantID:      grantID,
		ResearcherID: researcherID,
		Action:       action,
		UpdatedAt:    now,
	}
	r.votes[voteKey{grantID, researcherID}] = vote
	return &vote, nil
}

func (r *voteRepository) Get(_ context.Context, grantID, researcherID string) (*domain.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vote, ok := r.votes[voteKey{grantID, researcherID}]
	if !ok {
		return nil, nil
	}
	return &vote, nil
}

func (r *voteRepository) Delete(_ context.Context, grantID, researcherID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey{grantID, researcherID}
	if _, ok := r.votes[key]; !ok {
		return domain.ErrVoteNotFound
	}
	delete(r.votes, key)
	return nil
}

func (r *voteRepository) ListAll(_ context.Context) ([]domain.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	votes := make([]domain.Vote, 0, len(r.votes))
	for _, v := range r.votes {
		votes = append(votes, v)
	}
	return votes, nil
}

func (r *voteRepository) ListByGrant(_ context.Context, grantID string) ([]domain.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var votes []domain.Vote
	for key, v := range r.votes {
		if key.grantID == grantID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func (r *voteRepository) ListByResearcher(_ context.Context, researcherID string) ([]domain.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var votes []domain.Vote
	for key, v := range r.votes {
		if key.researcherID == researcherID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}
