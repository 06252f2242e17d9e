package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bouyesaturnin/linkvault-app/internal/application"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/entity"
	"github.com/bouyesaturnin/linkvault-app/internal/domain/repository"
	"github.com/bouyesaturnin/linkvault-app/pkg/response"
)

// Per-entity read field sets. Owner ids are internal and never leave
// the API.

func todoJSON(t *entity.Todo) gin.H {
	var categoryID any
	if t.CategoryID != nil {
		categoryID = *t.CategoryID
	}
	return gin.H{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"category_id": categoryID,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

func todosJSON(ts []entity.Todo) []gin.H {
	out := make([]gin.H, 0, len(ts))
	for i := range ts {
		out = append(out, todoJSON(&ts[i]))
	}
	return out
}

func categoryJSON(c *entity.Category) gin.H {
	return gin.H{
		"id":    c.ID,
		"name":  c.Name,
		"color": c.Color,
	}
}

func categoriesJSON(cs []entity.Category) []gin.H {
	out := make([]gin.H, 0, len(cs))
	for i := range cs {
		out = append(out, categoryJSON(&cs[i]))
	}
	return out
}

// renderError maps service errors onto the response taxonomy. Absent
// and foreign rows share the same 404; nothing else is revealed.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.JSON(c, response.Error[any](c, http.StatusNotFound, "not found", nil))
	case errors.Is(err, application.ErrTitleRequired),
		errors.Is(err, application.ErrNameRequired),
		errors.Is(err, application.ErrCategoryNotFound):
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, err.Error(), nil))
	default:
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal error", nil))
	}
}
