package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Name, c.Color)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID filters by owner before id: a category owned by someone else
// scans zero rows, indistinguishable from a missing one.
func (r *CategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error) {
	c := &entity.Category{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND id = $2
	`, ownerID, id)

	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

func (r *CategoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $1, color = $2, updated_at = now()
		WHERE user_id = $3 AND id = $4
		RETURNING updated_at
	`, c.Name, c.Color, c.UserID, c.ID)

	if err := row.Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete clears references from todos and removes the category in one
// transaction. The FK is ON DELETE SET NULL as well, but the clearing
// is done explicitly so updated_at advances on the affected todos.
func (r *CategoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE todos SET category_id = NULL, updated_at = now()
		WHERE user_id = $1 AND category_id = $2
	`, ownerID, id); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `
		DELETE FROM categories WHERE user_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
