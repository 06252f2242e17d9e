package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	repo "github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrCategoryNotFound = errors.New("category not found")
)

// TodoService is the owner-scoped controller for todos. It injects the
// caller as owner on writes, verifies that any referenced category
// belongs to the same caller, and mirrors writes to Elasticsearch when
// a client is configured.
type TodoService struct {
	Todos        repo.TodoRepository
	Categories   repo.CategoryRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESTodosIndex string
}

func NewTodoService(todos repo.TodoRepository, categories repo.CategoryRepository, logger *logrus.Logger, es *elasticsearch.Client, esTodosIndex string) *TodoService {
	return &TodoService{Todos: todos, Categories: categories, Logger: logger, ES: es, ESTodosIndex: esTodosIndex}
}

func (s *TodoService) List(ctx context.Context, userID string) ([]entity.Todo, error) {
	return s.Todos.ListByOwner(ctx, userID)
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*entity.Todo, error) {
	return s.Todos.GetByID(ctx, userID, id)
}

type TodoInput struct {
	Title       string
	Description string
	Completed   bool
	CategoryID  string // empty means uncategorized
}

func (s *TodoService) Create(ctx context.Context, userID string, in TodoInput) (*entity.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	var categoryID *string
	if in.CategoryID != "" {
		if err := s.checkCategory(ctx, userID, in.CategoryID); err != nil {
			return nil, err
		}
		cid := in.CategoryID
		categoryID = &cid
	}
	t := &entity.Todo{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: in.Description,
		Completed:   in.Completed,
	}
	if err := s.Todos.Create(ctx, t); err != nil {
		return nil, err
	}
	s.indexTodo(ctx, t)
	return t, nil
}

type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	// CategoryID: nil leaves the reference alone, empty string clears
	// it, anything else must resolve to a category of the same owner.
	CategoryID *string
}

func (s *TodoService) Update(ctx context.Context, userID, id string, in TodoUpdate) (*entity.Todo, error) {
	t, err := s.Todos.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			t.CategoryID = nil
		} else {
			if err := s.checkCategory(ctx, userID, *in.CategoryID); err != nil {
				return nil, err
			}
			cid := *in.CategoryID
			t.CategoryID = &cid
		}
	}
	if err := s.Todos.Update(ctx, t); err != nil {
		return nil, err
	}
	s.indexTodo(ctx, t)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Todos.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.deleteTodoDoc(ctx, id)
	return nil
}

// checkCategory resolves the category through the caller-scoped
// repository, so a foreign category id fails the same way a bogus one
// does.
func (s *TodoService) checkCategory(ctx context.Context, userID, categoryID string) error {
	if _, err := s.Categories.GetByID(ctx, userID, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *TodoService) indexTodo(ctx context.Context, t *entity.Todo) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"user_id":     t.UserID,
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESTodosIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("todo_id", t.ID).Warn("es index response error")
	}
}

func (s *TodoService) deleteTodoDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTodosIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("todo_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match over title and description, filtered to
// the caller's documents. Returns an empty slice when ES is off.
func (s *TodoService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTodosIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESTodosIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
