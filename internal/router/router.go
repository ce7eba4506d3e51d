package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/limva/limva-api/internal/config"
	"github.com/limva/limva-api/internal/handler"
	"github.com/limva/limva-api/internal/middleware"
	"github.com/limva/limva-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	PostHandler       *handler.PostHandler
	CommentHandler    *handler.CommentHandler
	EngagementHandler *handler.EngagementHandler
	HomeworkHandler   *handler.HomeworkHandler
	PracticeHandler   *handler.PracticeHandler
	RankingHandler    *handler.RankingHandler
	AISettingsHandler *handler.AISettingsHandler
	AdminHandler      *handler.AdminHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/v1/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// The guard is attached per route rather than on the shared /api
	// prefix: public reads and the protected writes live side by side
	// under the same paths, and a prefix-wide Use would lock out login
	// itself.
	aiLimiter := middleware.RateLimit("ai", cfg.AIRateLimitPerMinute, time.Minute)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api, jwtMiddleware)
	}

	if deps.PostHandler != nil {
		deps.PostHandler.Register(api, jwtMiddleware)
	}

	if deps.CommentHandler != nil {
		deps.CommentHandler.Register(api, jwtMiddleware)
	}

	if deps.EngagementHandler != nil {
		deps.EngagementHandler.Register(api, jwtMiddleware)
	}

	if deps.HomeworkHandler != nil {
		deps.HomeworkHandler.Register(api, jwtMiddleware, aiLimiter)
	}

	if deps.PracticeHandler != nil {
		deps.PracticeHandler.Register(api, jwtMiddleware, aiLimiter)
	}

	if deps.RankingHandler != nil {
		deps.RankingHandler.Register(api)
	}

	if deps.AISettingsHandler != nil {
		deps.AISettingsHandler.Register(api, jwtMiddleware, middleware.RequireAdmin())
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireAdmin())
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(admin)
	}
	if deps.RankingHandler != nil {
		deps.RankingHandler.RegisterAdmin(admin)
	}
}
