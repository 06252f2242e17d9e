package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
	"github.com/bouyesaturnin/linkvault-app/internal/infrastructure/memory"
)

type todoFixture struct {
	store      *memory.Store
	todos      *TodoService
	categories *CategoryService
}

func newTodoFixture() *todoFixture {
	store := memory.NewStore()
	return &todoFixture{
		store:      store,
		todos:      NewTodoService(store.Todos(), store.Categories(), testLogger(), nil, ""),
		categories: NewCategoryService(store.Categories(), nil, testLogger()),
	}
}

const (
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
)

func TestTodoCreateInjectsOwner(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	todo, err := f.todos.Create(ctx, alice, TodoInput{Title: "Ship it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if todo.UserID != alice {
		t.Fatalf("owner must be the caller, got %q", todo.UserID)
	}
	if todo.Completed {
		t.Fatal("completed must default to false")
	}
}

func TestTodoCreateRequiresTitle(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	for _, title := range []string{"", "   "} {
		if _, err := f.todos.Create(ctx, alice, TodoInput{Title: title}); !errors.Is(err, ErrTitleRequired) {
			t.Fatalf("title %q: expected ErrTitleRequired, got %v", title, err)
		}
	}
}

func TestTodoCrossOwnerAccessIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	todo, err := f.todos.Create(ctx, alice, TodoInput{Title: "private"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.todos.Get(ctx, bob, todo.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	title := "stolen"
	if _, err := f.todos.Update(ctx, bob, todo.ID, TodoUpdate{Title: &title}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := f.todos.Delete(ctx, bob, todo.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}

	// The record is untouched for its owner.
	got, err := f.todos.Get(ctx, alice, todo.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Title != "private" {
		t.Fatalf("title changed to %q", got.Title)
	}
}

func TestTodoListIsOwnerScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := f.todos.Create(ctx, alice, TodoInput{Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	if _, err := f.todos.Create(ctx, bob, TodoInput{Title: "bob's"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := f.todos.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(list))
	}
	// Most recent first.
	want := []string{"third", "second", "first"}
	for i, todo := range list {
		if todo.UserID != alice {
			t.Fatalf("foreign todo in list: %+v", todo)
		}
		if todo.Title != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], todo.Title)
		}
	}
}

func TestTodoPartialUpdate(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	todo, err := f.todos.Create(ctx, alice, TodoInput{Title: "draft", Description: "keep me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := true
	updated, err := f.todos.Update(ctx, alice, todo.ID, TodoUpdate{Completed: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatal("completed not applied")
	}
	if updated.Title != "draft" || updated.Description != "keep me" {
		t.Fatalf("omitted fields must stay: %+v", updated)
	}
	if !updated.UpdatedAt.After(todo.UpdatedAt) {
		t.Fatal("updated_at must advance")
	}
	if !updated.CreatedAt.Equal(todo.CreatedAt) {
		t.Fatal("created_at must not change")
	}
}

func TestTodoCategoryMustBelongToCaller(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	bobCat, err := f.categories.Create(ctx, bob, CategoryInput{Name: "Bob's"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := f.todos.Create(ctx, alice, TodoInput{Title: "x", CategoryID: bobCat.ID}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("create: expected ErrCategoryNotFound, got %v", err)
	}

	todo, err := f.todos.Create(ctx, alice, TodoInput{Title: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.todos.Update(ctx, alice, todo.ID, TodoUpdate{CategoryID: &bobCat.ID}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("update: expected ErrCategoryNotFound, got %v", err)
	}
}

func TestTodoCategoryAssignAndClear(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	cat, err := f.categories.Create(ctx, alice, CategoryInput{Name: "Work"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	todo, err := f.todos.Create(ctx, alice, TodoInput{Title: "x", CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if todo.CategoryID == nil || *todo.CategoryID != cat.ID {
		t.Fatalf("category not assigned: %+v", todo.CategoryID)
	}

	empty := ""
	updated, err := f.todos.Update(ctx, alice, todo.ID, TodoUpdate{CategoryID: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CategoryID != nil {
		t.Fatalf("category not cleared: %+v", updated.CategoryID)
	}
}

func TestCategoryDeleteClearsTodoReference(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	cat, err := f.categories.Create(ctx, alice, CategoryInput{Name: "Work"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	todo, err := f.todos.Create(ctx, alice, TodoInput{Title: "x", CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.categories.Delete(ctx, alice, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	got, err := f.todos.Get(ctx, alice, todo.ID)
	if err != nil {
		t.Fatalf("todo must survive category deletion: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("reference must be cleared, got %v", *got.CategoryID)
	}
}

func TestTodoSearchDisabledWithoutES(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	hits, err := f.todos.Search(ctx, alice, "anything", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits without elasticsearch, got %d", len(hits))
	}
}

func TestTodoRoundTripEqualOnWritableFields(t *testing.T) {
	ctx := context.Background()
	f := newTodoFixture()

	created, err := f.todos.Create(ctx, alice, TodoInput{Title: "Ship release", Description: "details", Completed: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := f.todos.Get(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	same := func(a, b *entity.Todo) bool {
		return a.Title == b.Title && a.Description == b.Description && a.Completed == b.Completed
	}
	if !same(created, got) {
		t.Fatalf("round trip mismatch: %+v vs %+v", created, got)
	}
}
