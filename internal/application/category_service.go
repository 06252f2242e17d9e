package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	repo "github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
)

var ErrNameRequired = errors.New("name is required")

const categoryCacheTTL = 5 * time.Minute

// CategoryService is the owner-scoped controller for categories. Every
// call takes the caller's user id explicitly; the repository enforces
// the scope in SQL.
type CategoryService struct {
	Categories repo.CategoryRepository
	Redis      *redis.Client
	Logger     *logrus.Logger
}

func NewCategoryService(categories repo.CategoryRepository, rdb *redis.Client, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Categories: categories, Redis: rdb, Logger: logger}
}

func categoryCacheKey(ownerID string) string {
	return "categories:owner:" + ownerID
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]entity.Category, error) {
	if s.Redis != nil {
		var cached []entity.Category
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, categoryCacheKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}
	out, err := s.Categories.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, categoryCacheKey(userID), out, categoryCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("category cache set failed")
		}
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (*entity.Category, error) {
	return s.Categories.GetByID(ctx, userID, id)
}

type CategoryInput struct {
	Name  string
	Color string
}

// Create sets the owner from the caller; any owner-like field the
// client sent never reaches this layer.
func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	color := in.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	c := &entity.Category{UserID: userID, Name: name, Color: color}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return c, nil
}

type CategoryUpdate struct {
	Name  *string
	Color *string
}

// Update applies a partial payload. The owner never changes.
func (s *CategoryService) Update(ctx context.Context, userID, id string, in CategoryUpdate) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		c.Name = name
	}
	if in.Color != nil && *in.Color != "" {
		c.Color = *in.Color
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Categories.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, categoryCacheKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("category cache invalidation failed")
	}
}
