package explore

import (
	"sanctuary_backend/internal/audio"
	"sanctuary_backend/internal/events"
	"sanctuary_backend/internal/geo"
	apphttp "sanctuary_backend/internal/http"
	"sanctuary_backend/internal/narration"
	"sanctuary_backend/internal/sources"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

// Module wires the explore aggregation routes.
type Module struct {
	service *Service
	handler *Handler
}

func NewModule(
	cfg config.ExploreConfig,
	geoSvc *geo.Service,
	src *sources.Clients,
	narrationSvc *narration.Service,
	audioSvc *audio.Service,
	bus events.Bus,
	log *logger.Logger,
) *Module {
	svc := NewService(cfg, geoSvc, src, narrationSvc, audioSvc, bus, log)
	return &Module{
		service: svc,
		handler: NewHandler(svc),
	}
}

func (m *Module) Name() string {
	return "explore"
}

// Service returns the aggregator for use by other entry points.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/explore")
	group.POST("", m.handler.Explore)
	group.GET("/stream", m.handler.Stream)
}

var _ apphttp.Module = (*Module)(nil)
