package router

import (
	"context"
	"net/http"
	"time"

	apphttp "enquiry_backend/internal/http"
	"enquiry_backend/platform/httpkit"
	"enquiry_backend/platform/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	bodyLimitBytes    = 10 << 10
	healthPingTimeout = 2 * time.Second
)

// New builds the Gin engine with global middleware, health and metrics
// endpoints, static assets and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	cfg := app.Config
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		app.Logger.Warn("invalid trusted proxies, trusting none", "error", err)
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(httpkit.Recovery(app.Logger, cfg.IsDevelopment()))
	engine.Use(httpkit.RequestID())
	engine.Use(metrics.Middleware())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if corsMiddleware := newCORS(cfg); corsMiddleware != nil {
		engine.Use(corsMiddleware)
	}
	engine.Use(httpkit.RateLimit(app.Limiter, app.Logger))
	engine.Use(httpkit.BodyLimit(bodyLimitBytes))

	startedAt := time.Now()
	engine.GET("/api/health", healthHandler(app, startedAt))

	if cfg.GetMetricsEnabled() {
		registerMetrics(engine, cfg)
	}

	api := engine.Group("/api")
	rc := &apphttp.RouterContext{
		Engine:    engine,
		API:       api,
		AdminAuth: httpkit.AdminTokenRequired(cfg, app.Logger),
		Errors:    app.Errors,
	}
	for _, m := range app.Modules {
		m.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", m.Name())
	}

	engine.NoRoute(staticOrNotFound(cfg.GetStaticDir()))

	return engine
}

func newCORS(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders: []string{httpkit.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case cfg.GetCORSAllowAll():
		corsCfg.AllowAllOrigins = true
	case len(cfg.GetCORSOrigins()) > 0:
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	default:
		return nil
	}
	return cors.New(corsCfg)
}

func healthHandler(app *apphttp.App, startedAt time.Time) gin.HandlerFunc {
	env := app.Config.GetEnv()
	return func(c *gin.Context) {
		database := "disconnected"
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			if err := app.Health.Ping(ctx); err == nil {
				database = "connected"
			}
			cancel()
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().UTC(),
			"uptime":      time.Since(startedAt).Seconds(),
			"database":    database,
			"environment": env,
		})
	}
}

func registerMetrics(engine *gin.Engine, cfg apphttp.RouterConfig) {
	handler := gin.WrapH(promhttp.Handler())
	if user := cfg.GetMetricsUsername(); user != "" {
		engine.GET("/metrics", gin.BasicAuth(gin.Accounts{user: cfg.GetMetricsPassword()}), handler)
		return
	}
	engine.GET("/metrics", handler)
}
