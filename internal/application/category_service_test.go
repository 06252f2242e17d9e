package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
	"github.com/bouyesaturnin/linkvault-app/internal/infrastructure/memory"
)

func newCategoryService() *CategoryService {
	store := memory.NewStore()
	return NewCategoryService(store.Categories(), nil, testLogger())
}

func TestCategoryCreateDefaultsColor(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()

	cat, err := svc.Create(ctx, alice, CategoryInput{Name: "Work"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Color != entity.DefaultCategoryColor {
		t.Fatalf("expected default color %q, got %q", entity.DefaultCategoryColor, cat.Color)
	}
	if cat.UserID != alice {
		t.Fatalf("owner must be the caller, got %q", cat.UserID)
	}

	custom, err := svc.Create(ctx, alice, CategoryInput{Name: "Urgent", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if custom.Color != "#ff0000" {
		t.Fatalf("expected #ff0000, got %q", custom.Color)
	}
}

func TestCategoryCreateRequiresName(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()

	if _, err := svc.Create(ctx, alice, CategoryInput{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCategoryCrossOwnerAccessIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()

	cat, err := svc.Create(ctx, alice, CategoryInput{Name: "Work"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, bob, cat.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	name := "mine now"
	if _, err := svc.Update(ctx, bob, cat.ID, CategoryUpdate{Name: &name}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, bob, cat.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestCategoryListScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()

	if _, err := svc.Create(ctx, alice, CategoryInput{Name: "Work"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, alice, CategoryInput{Name: "Home"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, bob, CategoryInput{Name: "Secret"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(list))
	}
	// Creation order.
	if list[0].Name != "Work" || list[1].Name != "Home" {
		t.Fatalf("unexpected order: %q, %q", list[0].Name, list[1].Name)
	}
	for _, c := range list {
		if c.UserID != alice {
			t.Fatalf("foreign category in list: %+v", c)
		}
	}
}

func TestCategoryPartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService()

	cat, err := svc.Create(ctx, alice, CategoryInput{Name: "Work", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Office"
	updated, err := svc.Update(ctx, alice, cat.ID, CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Office" {
		t.Fatalf("name not applied: %q", updated.Name)
	}
	if updated.Color != "#ff0000" {
		t.Fatalf("omitted color must stay, got %q", updated.Color)
	}
}
