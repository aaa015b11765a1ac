package profiles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sanctuary_backend/platform/httpkit"
)

// Handler exposes the profile validation endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Validate handles POST /api/v1/profiles/validate.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "handle and platform are required", nil)
		return
	}

	resp, err := h.svc.Validate(c.Request.Context(), req)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "profile probe failed", nil)
		return
	}

	httpkit.OK(c, resp)
}
