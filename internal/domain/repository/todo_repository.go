package repository

import (
	"context"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
)

// TodoRepository persists todos, owner-scoped like CategoryRepository.
// ListByOwner returns rows in descending creation order.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Todo, error)
	Update(ctx context.Context, t *entity.Todo) error
	Delete(ctx context.Context, ownerID, id string) error
}
