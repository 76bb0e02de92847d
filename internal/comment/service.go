// AngelaMos | 2026
// service.go

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
	"github.com/mahdiwhb/DEALEXPRESS/internal/deal"
	"github.com/mahdiwhb/DEALEXPRESS/internal/policy"
)

type Service struct {
	comments Repository
	deals    deal.Repository
	logger   *slog.Logger
}

func NewService(
	comments Repository,
	deals deal.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{comments: comments, deals: deals, logger: logger}
}

func (s *Service) ListComments(
	ctx context.Context,
	actor policy.Actor,
	dealID string,
) ([]CommentResponse, error) {
	if err := s.checkDealVisible(ctx, actor, dealID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}

	return ToCommentResponseList(comments), nil
}

func (s *Service) CreateComment(
	ctx context.Context,
	actor policy.Actor,
	dealID string,
	req CreateCommentRequest,
) (*CommentResponse, error) {
	if err := s.checkDealVisible(ctx, actor, dealID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &Comment{
		ID:        uuid.New().String(),
		DealID:    dealID,
		AuthorID:  actor.ID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"comment_id", comment.ID,
		"deal_id", dealID,
		"author_id", actor.ID,
	)

	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := ToCommentResponse(created)
	return &resp, nil
}

func (s *Service) UpdateComment(
	ctx context.Context,
	actor policy.Actor,
	id string,
	req UpdateCommentRequest,
) (*CommentResponse, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanEditComment(actor, comment.AuthorID) {
		return nil, fmt.Errorf("edit comment: %w", core.ErrForbidden)
	}

	content := strings.TrimSpace(req.Content)
	if err := s.comments.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}

	fresh, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCommentResponse(fresh)
	return &resp, nil
}

func (s *Service) DeleteComment(
	ctx context.Context,
	actor policy.Actor,
	id string,
) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanDeleteComment(actor, comment.AuthorID) {
		return fmt.Errorf("delete comment: %w", core.ErrForbidden)
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted", "comment_id", id, "actor_id", actor.ID)

	return nil
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
