package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bouyesaturnin/linkvault-app/internal/container"
	handlers "github.com/bouyesaturnin/linkvault-app/internal/interface/http"
	"github.com/bouyesaturnin/linkvault-app/internal/interface/middleware"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
)

// TodoModule wires the owner-scoped todo CRUD routes. Everything here
// requires a bearer access token.
type TodoModule struct {
	Handler *handlers.TodoHandler
	JWT     *helpers.JWTManager
}

func NewTodoModule(h *handlers.TodoHandler, jwt *helpers.JWTManager) *TodoModule {
	return &TodoModule{Handler: h, JWT: jwt}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/todos/", m.Handler.List)
		auth.POST("/todos/", m.Handler.Create)
		auth.GET("/todos/search", m.Handler.Search)
		auth.GET("/todos/:id/", m.Handler.Get)
		auth.PUT("/todos/:id/", m.Handler.Update)
		auth.PATCH("/todos/:id/", m.Handler.Update)
		auth.DELETE("/todos/:id/", m.Handler.Delete)
	}
}
