// Package phoneinput provides the phone input domain module: sessions that
// host one controller each, plus stateless format and validate endpoints.
package phoneinput

import (
	"flagphone_backend/internal/countries"
	"flagphone_backend/internal/events"
	apphttp "flagphone_backend/internal/http"
	"flagphone_backend/internal/phoneinput/handler"
	"flagphone_backend/internal/phoneinput/numbering"
	"flagphone_backend/internal/phoneinput/service"
	"flagphone_backend/internal/phoneinput/session"
	"flagphone_backend/platform/logger"
	"flagphone_backend/platform/validator"
)

// Module represents the phone input domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new phone input module with all dependencies wired
func NewModule(dir *countries.Directory, source numbering.Source, store session.Store, eventBus events.Bus, val *validator.Validator, log *logger.Logger, opts service.Options) *Module {
	svc := service.New(dir, source, store, log, opts)
	svc.SetEventBus(eventBus)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "phoneinput"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/phone-inputs"))
	m.handler.RegisterNumberRoutes(ctx.V1.Group("/numbers"))
}

var _ apphttp.Module = (*Module)(nil)
