package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bouyesaturnin/linkvault-app/internal/container"
	handlers "github.com/bouyesaturnin/linkvault-app/internal/interface/http"
	"github.com/bouyesaturnin/linkvault-app/internal/interface/middleware"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
)

// CategoryModule wires the owner-scoped category CRUD routes.
type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/categories/", m.Handler.List)
		auth.POST("/categories/", m.Handler.Create)
		auth.GET("/categories/:id/", m.Handler.Get)
		auth.PUT("/categories/:id/", m.Handler.Update)
		auth.PATCH("/categories/:id/", m.Handler.Update)
		auth.DELETE("/categories/:id/", m.Handler.Delete)
	}
}
