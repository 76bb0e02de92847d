// AngelaMos | 2026
// service.go

package deal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/policy"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateDeal(
	ctx context.Context,
	actor policy.Actor,
	req CreateDealRequest,
) (*DealResponse, error) {
	category := req.Category
	if category == "" {
		category = "Autre"
	}

	now := time.Now()
	deal := &Deal{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		URL:           req.URL,
		Category:      category,
		Status:        string(policy.StatusPending),
		Temperature:   0,
		AuthorID:      actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, err
	}

	s.logger.Info("deal created",
		"deal_id", deal.ID,
		"author_id", actor.ID,
	)

	created, err := s.repo.GetByID(ctx, deal.ID)
	if err != nil {
		return nil, err
	}

	resp := ToDealResponse(created)
	return &resp, nil
}

// GetDeal returns a deal the actor may see. A deal hidden by policy is
// reported as not found so outsiders cannot confirm its existence.
func (s *Service) GetDeal(
	ctx context.Context,
	actor policy.Actor,
	id string,
) (*DealResponse, error) {
	deal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewDeal(actor, deal.AuthorID, policy.DealStatus(deal.Status)) {
		return nil, fmt.Errorf("deal %s: %w", id, core.ErrNotFound)
	}

	resp := ToDealResponse(deal)
	return &resp, nil
}

func (s *Service) ListDeals(
	ctx context.Context,
	actor policy.Actor,
	params ListDealsParams,
) ([]DealResponse, int, error) {
	params.Normalize()

	deals, total, err := s.repo.List(
		ctx,
		policy.SeesAllStatuses(actor),
		params.Limit,
		params.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}

	return ToDealResponseList(deals), total, nil
}

func (s *Service) SearchDeals(
	ctx context.Context,
	actor policy.Actor,
	query string,
) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf(
			"search query is required: %w",
			core.ErrInvalidInput,
		)
	}

	deals, err := s.repo.Search(ctx, query, policy.SeesAllStatuses(actor))
	if err != nil {
		return nil, err
	}

	data := ToDealResponseList(deals)
	return &SearchResponse{
		Query: query,
		Count: len(data),
		Data:  data,
	}, nil
}

func (s *Service) UpdateDeal(
	ctx context.Context,
	actor policy.Actor,
	id string,
	req UpdateDealRequest,
) (*DealResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanEditDeal(
		actor,
		current.AuthorID,
		policy.DealStatus(current.Status),
	); err != nil {
		return nil, err
	}

	updated := current.Deal
	if req.Title != nil {
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		updated.OriginalPrice = req.OriginalPrice
	}
	if req.URL != nil {
		updated.URL = req.URL
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("deal updated", "deal_id", id, "actor_id", actor.ID)

	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToDealResponse(fresh)
	return &resp, nil
}

func (s *Service) DeleteDeal(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	deal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanDeleteDeal(actor, deal.AuthorID) {
		return fmt.Errorf("delete deal: %w", core.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deal deleted", "deal_id", id, "actor_id", actor.ID)

	return nil
}

func (s *Service) ListPendingDeals(
	ctx context.Context,
) ([]DealResponse, error) {
	deals, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return ToDealResponseList(deals), nil
}

// ModerateDeal moves a pending deal to approved or rejected. Both
// outcomes are terminal; there is no path back to pending.
func (s *Service) ModerateDeal(
	ctx context.Context,
	actor policy.Actor,
	id, status string,
) (*DealResponse, error) {
	target, err := policy.ModerationTarget(status)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, string(target)); err != nil {
		return nil, err
	}

	s.logger.Info("deal moderated",
		"deal_id", id,
		"status", string(target),
		"moderator_id", actor.ID,
	)

	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToDealResponse(fresh)
	return &resp, nil
}
