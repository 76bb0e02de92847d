// AngelaMos | 2026
// service.go

package vote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/deal"
	"github.com/mahdiwhb/DEALEXPRESS/internal/policy"
)

type Service struct {
	votes  Repository
	deals  deal.Repository
	logger *slog.Logger
	runTx  func(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

func NewService(
	db *sqlx.DB,
	votes Repository,
	deals deal.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		votes:  votes,
		deals:  deals,
		logger: logger,
		runTx: func(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
			return core.InTx(ctx, db, fn)
		},
	}
}

// CastVote records or changes the actor's vote and rewrites the deal's
// temperature in the same transaction. The write is a single upsert on
// the (user_id, deal_id) key, so a concurrent first vote resolves
// in-statement instead of aborting the transaction; casting the same
// type twice is a no-op that still returns the current tally.
func (s *Service) CastVote(
	ctx context.Context,
	actor policy.Actor,
	dealID, voteType string,
) (*VoteResponse, error) {
	if !ValidType(voteType) {
		return nil, fmt.Errorf(
			"vote type must be hot or cold: %w",
			core.ErrInvalidInput,
		)
	}

	if err := s.checkDealVisible(ctx, actor, dealID); err != nil {
		return nil, err
	}

	var resp *VoteResponse
	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()
		vote := &Vote{
			ID:        uuid.New().String(),
			DealID:    dealID,
			UserID:    actor.ID,
			Type:      voteType,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.votes.Upsert(ctx, tx, vote); err != nil {
			return err
		}

		var err error
		resp, err = s.refreshTemperature(ctx, tx, dealID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp.VoteType = voteType

	s.logger.Info("vote cast",
		"deal_id", dealID,
		"user_id", actor.ID,
		"type", voteType,
		"temperature", resp.Temperature,
	)

	return resp, nil
}

// RemoveVote deletes the actor's own vote. A missing vote is not found,
// matching the hidden-deal convention.
func (s *Service) RemoveVote(
	ctx context.Context,
	actor policy.Actor,
	dealID string,
) (*VoteResponse, error) {
	if err := s.checkDealVisible(ctx, actor, dealID); err != nil {
		return nil, err
	}

	var resp *VoteResponse
	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.votes.GetByUserAndDeal(ctx, tx, actor.ID, dealID)
		if err != nil {
			return err
		}

		if err := s.votes.Delete(ctx, tx, existing.ID); err != nil {
			return err
		}

		resp, err = s.refreshTemperature(ctx, tx, dealID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vote removed",
		"deal_id", dealID,
		"user_id", actor.ID,
		"temperature", resp.Temperature,
	)

	return resp, nil
}

func (s *Service) checkDealVisible(
	ctx context.Context,
	actor policy.Actor,
	dealID string,
) error {
	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return err
	}

	if !policy.CanViewDeal(actor, d.AuthorID, policy.DealStatus(d.Status)) {
		return fmt.Errorf("deal %s: %w", dealID, core.ErrNotFound)
	}

	return nil
}

// refreshTemperature recomputes the tally from the votes table and
// persists hot minus cold on the deal.
func (s *Service) refreshTemperature(
	ctx context.Context,
	tx *sqlx.Tx,
	dealID string,
) (*VoteResponse, error) {
	hot, cold, err := s.votes.Counts(ctx, tx, dealID)
	if err != nil {
		return nil, err
	}

	temperature := hot - cold
	if err := s.votes.SetDealTemperature(ctx, tx, dealID, temperature); err != nil {
		return nil, err
	}

	return &VoteResponse{
		DealID:      dealID,
		Temperature: temperature,
		HotCount:    hot,
		ColdCount:   cold,
	}, nil
}
