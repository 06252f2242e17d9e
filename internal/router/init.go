package router

import (
	"github.com/bouyesaturnin/linkvault-app/internal/application"
	"github.com/bouyesaturnin/linkvault-app/internal/container"
	pginfra "github.com/bouyesaturnin/linkvault-app/internal/infrastructure/postgres"
	handlers "github.com/bouyesaturnin/linkvault-app/internal/interface/http"
	"github.com/bouyesaturnin/linkvault-app/internal/router/modules"
)

// InitModules builds every feature module from the container
// singletons and registers it with the router registry. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	todos := pginfra.NewTodoRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), logger)
	categorySvc := application.NewCategoryService(categories, container.GetRedis(), logger)
	todoSvc := application.NewTodoService(todos, categories, logger, container.GetES(), cfg.ESTodosIndex)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	todoHandler := handlers.NewTodoHandler(todoSvc, logger)
	categoryHandler := handlers.NewCategoryHandler(categorySvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewTodoModule(todoHandler, container.GetJWT()))
	r.Add(modules.NewCategoryModule(categoryHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
