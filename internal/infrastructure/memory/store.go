// Package memory provides an in-memory implementation of the domain
// repositories. It backs the test suites and is handy for running the
// API without postgres; semantics mirror the SQL implementations,
// including owner scoping and reference clearing on category delete.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
)

type Store struct {
	mu         sync.Mutex
	users      map[string]entity.User
	categories map[string]entity.Category
	todos      map[string]entity.Todo
	clock      time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		categories: make(map[string]entity.Category),
		todos:      make(map[string]entity.Todo),
		clock:      time.Now().UTC(),
	}
}

// tick returns a strictly increasing timestamp so creation order is
// never ambiguous, even within one wall-clock tick.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Microsecond)
	return s.clock
}

func (s *Store) Users() repository.UserRepository         { return (*userRepo)(s) }
func (s *Store) Categories() repository.CategoryRepository { return (*categoryRepo)(s) }
func (s *Store) Todos() repository.TodoRepository          { return (*todoRepo)(s) }

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	now := s.tick()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

type categoryRepo Store

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	now := s.tick()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Category, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Category, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Category, 0)
	for _, c := range s.categories {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.categories[c.ID]
	if !ok || existing.UserID != c.UserID {
		return repository.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.tick()
	s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Delete(_ context.Context, ownerID, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != ownerID {
		return repository.ErrNotFound
	}
	for tid, t := range s.todos {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
			t.UpdatedAt = s.tick()
			s.todos[tid] = t
		}
	}
	delete(s.categories, id)
	return nil
}

type todoRepo Store

func (r *todoRepo) Create(_ context.Context, t *entity.Todo) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	now := s.tick()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.todos[t.ID] = *t
	return nil
}

func (r *todoRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Todo, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *todoRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Todo, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Todo, 0)
	for _, t := range s.todos {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *todoRepo) Update(_ context.Context, t *entity.Todo) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.todos[t.ID]
	if !ok || existing.UserID != t.UserID {
		return repository.ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = s.tick()
	s.todos[t.ID] = *t
	return nil
}

func (r *todoRepo) Delete(_ context.Context, ownerID, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

var (
	_ repository.UserRepository     = (*userRepo)(nil)
	_ repository.CategoryRepository = (*categoryRepo)(nil)
	_ repository.TodoRepository     = (*todoRepo)(nil)
)
