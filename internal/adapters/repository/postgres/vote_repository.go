package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Upsert(ctx context.Context, grantID, researcherID string, action domain.Action, now time.Time) (*domain.Vote, error) {
	query := `
		INSERT INTO votes (grant_id, researcher_id, action, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (grant_id, researcher_id) DO UPDATE
		SET action = EXCLUDED.action,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, grantID, researcherID, action, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert vote: %w", err)
	}

	return &domain.Vote{
		GrantID:      grantID,
		ResearcherID: researcherID,
		Action:       action,
		UpdatedAt:    now,
	}, nil
}

func (r *voteRepository) Get(ctx context.Context, grantID, researcherID string) (*domain.Vote, error) {
	query := `
		SELECT grant_id, researcher_id, action, updated_at
		FROM votes
		WHERE grant_id = $1 AND researcher_id = $2
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, grantID, researcherID).Scan(
		&vote.GrantID, &vote.ResearcherID, &vote.Action, &vote.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

func (r *voteRepository) Delete(ctx context.Context, grantID, researcherID string) error {
	query := `DELETE FROM votes WHERE grant_id = $1 AND researcher_id = $2`
	res, err := r.db.ExecContext(ctx, query, grantID, researcherID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}

func (r *voteRepository) ListAll(ctx context.Context) ([]domain.Vote, error) {
	query := `
		SELECT grant_id, researcher_id, action, updated_at
		FROM votes
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (r *voteRepository) ListByGrant(ctx context.Context, grantID string) ([]domain.Vote, error) {
	query := `
		SELECT grant_id, researcher_id, action, updated_at
		FROM votes
		WHERE grant_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, grantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes by grant: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func (r *voteRepository) ListByResearcher(ctx context.Context, researcherID string) ([]domain.Vote, error) {
	query := `
		SELECT grant_id, researcher_id, action, updated_at
		FROM votes
		WHERE researcher_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, researcherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes by researcher: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

func scanVotes(rows *sql.Rows) ([]domain.Vote, error) {
	var votes []domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.GrantID, &vote.ResearcherID, &vote.Action, &vote.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}
