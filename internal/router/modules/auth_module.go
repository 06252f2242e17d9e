package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bouyesaturnin/linkvault-app/internal/container"
	handlers "github.com/bouyesaturnin/linkvault-app/internal/interface/http"
	"github.com/bouyesaturnin/linkvault-app/internal/interface/middleware"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
)

// AuthModule wires registration and token endpoints.
// Public: POST /api/register/, POST /api/token/, POST /api/token/refresh/
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register/", registerLimiter, m.Handler.Register)
	rg.POST("/token/", tokenLimiter, m.Handler.TokenObtain)
	rg.POST("/token/refresh/", refreshLimiter, m.Handler.TokenRefresh)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
