package geocoder

import (
	"net/http"

	"campground_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the address lookup endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Lookup handles GET /api/v1/geocode?q=...
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)")
		return
	}

	results, err := h.svc.Geocode(c.Request.Context(), req.Query)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "address lookup service unavailable")
		return
	}

	httpkit.OK(c, results)
}
