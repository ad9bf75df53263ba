package countries

import (
	apphttp "flagphone_backend/internal/http"
	"flagphone_backend/platform/logger"
	"flagphone_backend/platform/validator"
)

// Module wires the country directory HTTP routes.
type Module struct {
	svc     *Service
	handler *Handler
}

func NewModule(dir *Directory, flags FlagResolver, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(dir, flags, log)
	return &Module{svc: svc, handler: NewHandler(svc, val)}
}

func (m *Module) Name() string {
	return "countries"
}

func (m *Module) Service() *Service {
	return m.svc
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/countries")
	group.GET("", m.handler.List)
	group.GET("/:code", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)
