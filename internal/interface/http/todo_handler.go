package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bouyesaturnin/linkvault-app/internal/application"
	"github.com/bouyesaturnin/linkvault-app/internal/interface/middleware"
	"github.com/bouyesaturnin/linkvault-app/pkg/response"
	"github.com/bouyesaturnin/linkvault-app/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CategoryID  string `json:"category_id" binding:"omitempty,uuid"`
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
}

// pathID returns the :id path parameter when it parses as a UUID. A
// malformed id is treated as not found, like any other miss.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusNotFound, "not found", nil))
		return "", false
	}
	return id, true
}

// List GET /api/todos/
func (h *TodoHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	todos, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, todosJSON(todos), "todos", map[string]any{"count": len(todos)}))
}

// Get GET /api/todos/:id/
func (h *TodoHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, todoJSON(t), "todo", nil))
}

// Create POST /api/todos/
// Owner-like fields in the payload are not bound and cannot reach the
// service; the owner is always the authenticated caller.
func (h *TodoHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), uid, application.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, todoJSON(t), "todo created", nil))
}

// Update PUT/PATCH /api/todos/:id/
func (h *TodoHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), uid, id, application.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, todoJSON(t), "todo updated", nil))
}

// Delete DELETE /api/todos/:id/
func (h *TodoHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "todo deleted", nil))
}

// Search GET /api/todos/search?q=
func (h *TodoHandler) Search(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	q := c.Query("q")
	if q == "" {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"}))
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, 10)
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)}))
}
