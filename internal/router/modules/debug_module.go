package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bouyesaturnin/linkvault-app/internal/container"
	"github.com/bouyesaturnin/linkvault-app/internal/interface/middleware"
	"github.com/bouyesaturnin/linkvault-app/pkg/response"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.healthz)

	if cfg := container.GetConfig(); cfg != nil && !cfg.DebugMetricsEnabled {
		return
	}
	// Public metrics endpoint (expvar), rate-limited per IP
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) healthz(c *gin.Context) {
	pool := container.GetPGPool()
	if pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			resp := response.Error[any](c, http.StatusServiceUnavailable, "database unreachable", nil)
			c.JSON(resp.Status, resp)
			return
		}
	}
	response.JSON(c, response.Success[any](c, http.StatusOK, gin.H{"ok": true}, "healthy", nil))
}
