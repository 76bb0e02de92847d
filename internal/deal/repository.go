// AngelaMos | 2026
// repository.go

package deal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

type Repository interface {
	Create(ctx context.Context, deal *Deal) error
	GetByID(ctx context.Context, id string) (*DealWithAuthor, error)
	List(
		ctx context.Context,
		allStatuses bool,
		limit, offset int,
	) ([]DealWithAuthor, int, error)
	Search(
		ctx context.Context,
		query string,
		allStatuses bool,
	) ([]DealWithAuthor, error)
	Update(ctx context.Context, deal *Deal) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListPending(ctx context.Context) ([]DealWithAuthor, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const dealWithAuthorColumns = `
	d.id, d.title, d.description, d.price, d.original_price, d.url,
	d.category, d.status, d.temperature, d.author_id,
	d.created_at, d.updated_at,
	u.username AS author_username`

func (r *repository) Create(ctx context.Context, deal *Deal) error {
	query := `
		INSERT INTO deals (
			id, title, description, price, original_price, url,
			category, status, temperature, author_id,
			created_at, updated_at
		) VALUES (
			:id, :title, :description, :price, :original_price, :url,
			:category, :status, :temperature, :author_id,
			:created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, deal); err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*DealWithAuthor, error) {
	query := `
		SELECT` + dealWithAuthorColumns + `
		FROM deals d
		JOIN users u ON u.id = d.author_id
		WHERE d.id = $1`

	var deal DealWithAuthor
	if err := r.db.GetContext(ctx, &deal, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("deal %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}

	return &deal, nil
}

func (r *repository) List(
	ctx context.Context,
	allStatuses bool,
	limit, offset int,
) ([]DealWithAuthor, int, error) {
	where := "WHERE d.status = 'approved'"
	if allStatuses {
		where = ""
	}

	countQuery := "SELECT COUNT(*) FROM deals d " + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count deals: %w", err)
	}

	query := `
		SELECT` + dealWithAuthorColumns + `
		FROM deals d
		JOIN users u ON u.id = d.author_id
		` + where + `
		ORDER BY d.created_at DESC
		LIMIT $1 OFFSET $2`

	deals := []DealWithAuthor{}
	if err := r.db.SelectContext(ctx, &deals, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list deals: %w", err)
	}

	return deals, total, nil
}

func (r *repository) Search(
	ctx context.Context,
	query string,
	allStatuses bool,
) ([]DealWithAuthor, error) {
	where := "AND d.status = 'approved'"
	if allStatuses {
		where = ""
	}

	stmt := `
		SELECT` + dealWithAuthorColumns + `
		FROM deals d
		JOIN users u ON u.id = d.author_id
		WHERE (d.title ILIKE $1 OR d.description ILIKE $1)
		` + where + `
		ORDER BY d.created_at DESC`

	pattern := "%" + escapeLike(query) + "%"

	deals := []DealWithAuthor{}
	if err := r.db.SelectContext(ctx, &deals, stmt, pattern); err != nil {
		return nil, fmt.Errorf("search deals: %w", err)
	}

	return deals, nil
}

func (r *repository) Update(ctx context.Context, deal *Deal) error {
	query := `
		UPDATE deals
		SET title = :title,
		    description = :description,
		    price = :price,
		    original_price = :original_price,
		    url = :url,
		    category = :category,
		    updated_at = NOW()
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, deal)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("deal %s: %w", deal.ID, core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE deals
		SET status = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update deal status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update deal status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("deal %s: %w", id, core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPending(
	ctx context.Context,
) ([]DealWithAuthor, error) {
	query := `
		SELECT` + dealWithAuthorColumns + `,
			u.email AS author_email
		FROM deals d
		JOIN users u ON u.id = d.author_id
		WHERE d.status = 'pending'
		ORDER BY d.created_at DESC`

	deals := []DealWithAuthor{}
	if err := r.db.SelectContext(ctx, &deals, query); err != nil {
		return nil, fmt.Errorf("list pending deals: %w", err)
	}

	return deals, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM deals WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("deal %s: %w", id, core.ErrNotFound)
	}

	return nil
}

// escapeLike neutralizes LIKE metacharacters so user input only ever
// matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
