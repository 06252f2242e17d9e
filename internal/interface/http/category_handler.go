package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bouyesaturnin/linkvault-app/internal/application"
	"github.com/bouyesaturnin/linkvault-app/internal/interface/middleware"
	"github.com/bouyesaturnin/linkvault-app/pkg/response"
	"github.com/bouyesaturnin/linkvault-app/pkg/validation"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type createCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

// List GET /api/categories/
func (h *CategoryHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	cats, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, categoriesJSON(cats), "categories", map[string]any{"count": len(cats)}))
}

// Get GET /api/categories/:id/
func (h *CategoryHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.Svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, categoryJSON(cat), "category", nil))
}

// Create POST /api/categories/
func (h *CategoryHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), uid, application.CategoryInput{Name: req.Name, Color: req.Color})
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusCreated, categoryJSON(cat), "category created", nil))
}

// Update PUT/PATCH /api/categories/:id/
func (h *CategoryHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}
	cat, err := h.Svc.Update(c.Request.Context(), uid, id, application.CategoryUpdate{Name: req.Name, Color: req.Color})
	if err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, categoryJSON(cat), "category updated", nil))
}

// Delete DELETE /api/categories/:id/
// Todos referencing the category keep existing with the reference
// cleared.
func (h *CategoryHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		renderError(c, err)
		return
	}
	response.JSON(c, response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "category deleted", nil))
}
