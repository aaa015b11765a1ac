package profiles

import (
	apphttp "sanctuary_backend/internal/http"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

// Module wires the profile validation routes.
type Module struct {
	service *Service
	handler *Handler
}

func NewModule(cfg config.ProfilesConfig, log *logger.Logger) (*Module, error) {
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
	return "profiles"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/profiles")
	group.POST("/validate", m.handler.Validate)
}

var _ apphttp.Module = (*Module)(nil)
