// Package router assembles the Gin engine from the application's modules.
package router

import (
	"net/http"
	"strings"

	apphttp "rental_portal_backend/internal/http"
	"rental_portal_backend/platform/httpkit"
	"rental_portal_backend/platform/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine: shared middleware, health endpoint, and one
// route registration pass over the app's modules.
func New(app *apphttp.App) *gin.Engine {
	if !strings.EqualFold(gin.Mode(), gin.TestMode) {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app.Config))

	// Coarse flood protection in front of the per-class window limiter.
	globalLimiter := httpkit.NewIPRateLimiter(rate.Limit(50), 100, app.Logger)
	engine.Use(globalLimiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctx := &apphttp.RouterContext{
		Engine:     engine,
		V1:         engine.Group("/api/v1"),
		ReadLimit:  httpkit.WindowLimit(app.Limiter, ratelimit.ClassRead, app.Logger),
		WriteLimit: httpkit.WindowLimit(app.Limiter, ratelimit.ClassWrite, app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
		corsConfig.AllowCredentials = cfg.GetCORSAllowCreds()
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return cors.New(corsConfig)
}
