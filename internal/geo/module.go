package geo

import (
	apphttp "sanctuary_backend/internal/http"
	"sanctuary_backend/platform/logger"
)

// Module wires the geocoding HTTP routes.
type Module struct {
	service *Service
	handler *Handler
}

func NewModule(cfg Config, log *logger.Logger) (*Module, error) {
	svc, err := NewService(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Module{
		service: svc,
		handler: NewHandler(svc),
	}, nil
}

func (m *Module) Name() string {
	return "geo"
}

// Service returns the resolver for use by other modules.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geo")
	group.GET("/resolve", m.handler.Resolve)
}

var _ apphttp.Module = (*Module)(nil)
