// AngelaMos | 2026
// repository.go

package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*CommentWithAuthor, error)
	ListByDeal(ctx context.Context, dealID string) ([]CommentWithAuthor, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const commentWithAuthorColumns = `
	c.id, c.deal_id, c.author_id, c.content, c.created_at, c.updated_at,
	u.username AS author_username`

func (r *repository) Create(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (
			id, deal_id, author_id, content, created_at, updated_at
		) VALUES (
			:id, :deal_id, :author_id, :content, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*CommentWithAuthor, error) {
	query := `
		SELECT` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	var comment CommentWithAuthor
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &comment, nil
}

func (r *repository) ListByDeal(
	ctx context.Context,
	dealID string,
) ([]CommentWithAuthor, error) {
	query := `
		SELECT` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.deal_id = $1
		ORDER BY c.created_at DESC`

	comments := []CommentWithAuthor{}
	if err := r.db.SelectContext(ctx, &comments, query, dealID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}

func (r *repository) UpdateContent(
	ctx context.Context,
	id, content string,
) error {
	query := `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, content, id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %s: %w", id, core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM comments WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %s: %w", id, core.ErrNotFound)
	}

	return nil
}
