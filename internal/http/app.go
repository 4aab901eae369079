// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"enquiry_backend/platform/config"
	"enquiry_backend/platform/httpkit"
	"enquiry_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.AdminConfig
	config.MetricsConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for the health endpoint's database flag.
	Health HealthChecker
	// Limiter is the global per-IP request budget.
	Limiter httpkit.Limiter
	// Errors maps domain errors to JSON responses.
	Errors *httpkit.ErrorHandler
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
