package repository

import (
	"context"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
)

// CategoryRepository persists categories. Every method that addresses
// a single row takes the owner id and restricts the query to it before
// the id filter, so foreign rows behave exactly like absent rows.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	// Delete removes the category and clears category_id on every todo
	// that referenced it, in a single transaction.
	Delete(ctx context.Context, ownerID, id string) error
}
