package geo

import (
	"net/http"

	"sanctuary_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the geocoding lookup endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Resolve handles GET /api/v1/geo/resolve?q=...
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 2 chars)", nil)
		return
	}

	res, err := h.svc.Resolve(c.Request.Context(), req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "geocoding service unavailable", nil)
		return
	}
	if res == nil {
		httpkit.Error(c, http.StatusNotFound, "address not documented", nil)
		return
	}

	httpkit.OK(c, res)
}
