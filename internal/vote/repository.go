// AngelaMos | 2026
// repository.go

package vote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

// Repository runs against either the pool or an open transaction; every
// method takes the executor so the service can group the vote mutation
// and the temperature rewrite atomically.
type Repository interface {
	GetByUserAndDeal(
		ctx context.Context,
		q core.DBTX,
		userID, dealID string,
	) (*Vote, error)
	Upsert(ctx context.Context, q core.DBTX, vote *Vote) error
	Delete(ctx context.Context, q core.DBTX, id string) error
	Counts(
		ctx context.Context,
		q core.DBTX,
		dealID string,
	) (hot, cold int, err error)
	SetDealTemperature(
		ctx context.Context,
		q core.DBTX,
		dealID string,
		temperature int,
	) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) GetByUserAndDeal(
	ctx context.Context,
	q core.DBTX,
	userID, dealID string,
) (*Vote, error) {
	query := `
		SELECT id, deal_id, user_id, type, created_at, updated_at
		FROM votes
		WHERE user_id = $1 AND deal_id = $2`

	var vote Vote
	if err := q.GetContext(ctx, &vote, query, userID, dealID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vote: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get vote: %w", err)
	}

	return &vote, nil
}

// Upsert writes the user's vote, replacing any row a concurrent request
// got in first. Resolving the (user_id, deal_id) conflict inside the
// statement keeps the enclosing transaction usable; an aborted insert
// would poison it.
func (r *repository) Upsert(
	ctx context.Context,
	q core.DBTX,
	vote *Vote,
) error {
	query := `
		INSERT INTO votes (id, deal_id, user_id, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, deal_id)
		DO UPDATE SET type = EXCLUDED.type, updated_at = NOW()`

	_, err := q.ExecContext(
		ctx,
		query,
		vote.ID,
		vote.DealID,
		vote.UserID,
		vote.Type,
		vote.CreatedAt,
		vote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, q core.DBTX, id string) error {
	if _, err := q.ExecContext(
		ctx,
		`DELETE FROM votes WHERE id = $1`,
		id,
	); err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}

	return nil
}

func (r *repository) Counts(
	ctx context.Context,
	q core.DBTX,
	dealID string,
) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'hot')  AS hot,
			COUNT(*) FILTER (WHERE type = 'cold') AS cold
		FROM votes
		WHERE deal_id = $1`

	var counts struct {
		Hot  int `db:"hot"`
		Cold int `db:"cold"`
	}
	if err := q.GetContext(ctx, &counts, query, dealID); err != nil {
		return 0, 0, fmt.Errorf("count votes: %w", err)
	}

	return counts.Hot, counts.Cold, nil
}

func (r *repository) SetDealTemperature(
	ctx context.Context,
	q core.DBTX,
	dealID string,
	temperature int,
) error {
	query := `
		UPDATE deals
		SET temperature = $1, updated_at = NOW()
		WHERE id = $2`

	if _, err := q.ExecContext(ctx, query, temperature, dealID); err != nil {
		return fmt.Errorf("set deal temperature: %w", err)
	}

	return nil
}
