package explore

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sanctuary_backend/platform/httpkit"
)

// Handler exposes the explore endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Explore handles POST /api/v1/explore. It blocks until every species
// record is enriched and returns the aggregate response.
func (h *Handler) Explore(c *gin.Context) {
	var req ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "location is required (min 2 chars)", nil)
		return
	}

	resp, err := h.svc.Explore(c.Request.Context(), req.Location, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// Stream handles GET /api/v1/explore/stream?location=... and pushes one
// SSE event per enriched species, then a terminal "done" event.
func (h *Handler) Stream(c *gin.Context) {
	location := c.Query("location")
	if len(location) < 2 {
		httpkit.Error(c, http.StatusBadRequest, "location is required (min 2 chars)", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, records, err := h.svc.Stream(c.Request.Context(), location, limit)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent("coordinates", res.Center)
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	delivered := 0
	for {
		select {
		case <-clientGone:
			return
		case rec, ok := <-records:
			if !ok {
				c.SSEvent("done", gin.H{"count": delivered})
				c.Writer.Flush()
				return
			}
			c.SSEvent("species", rec)
			c.Writer.Flush()
			delivered++
		}
	}
}
