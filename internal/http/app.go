// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"flagphone_backend/internal/events"
	"flagphone_backend/platform/config"
	"flagphone_backend/platform/httpkit"
	"flagphone_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and rate limit settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (e.g., session store ping). Optional.
	Health HealthChecker
	// EventBus carries phone input events to logging subscribers.
	EventBus events.Bus
	// RateLimiter guards /api/v1. The router builds one from Config when nil.
	RateLimiter *httpkit.IPRateLimiter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
