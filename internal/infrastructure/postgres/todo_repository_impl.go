package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (user_id, category_id, title, description, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.CategoryID, t.Title, t.Description, t.Completed)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	t := &entity.Todo{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, category_id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE user_id = $1 AND id = $2
	`, ownerID, id)

	if err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description,
		&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, category_id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Todo, 0)
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description,
			&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET category_id = $1, title = $2, description = $3, completed = $4, updated_at = now()
		WHERE user_id = $5 AND id = $6
		RETURNING updated_at
	`, t.CategoryID, t.Title, t.Description, t.Completed, t.UserID, t.ID)

	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM todos WHERE user_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
