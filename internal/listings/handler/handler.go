package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_portal_backend/internal/listings/service"
	"rental_portal_backend/internal/listings/transport"
	"rental_portal_backend/platform/httpkit"
	"rental_portal_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// Handler exposes the listings search endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new listings handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List handles GET /api/v1/listings.
//
// With a valid lat/lng pair it returns listings within the requested radius,
// or locality aggregates when mode=areas. Without one it serves the cached,
// capped list of available listings.
func (h *Handler) List(c *gin.Context) {
	var q transport.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lat, latErr := strconv.ParseFloat(q.Lat, 64)
	lng, lngErr := strconv.ParseFloat(q.Lng, 64)
	if latErr != nil || lngErr != nil || !validCoordinate(lat, lng) {
		// Absent or malformed coordinates select the cached hot list.
		payload, err := h.svc.HotList(c.Request.Context())
		if httpkit.HandleError(c, err) {
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	radiusKM, err := strconv.ParseFloat(q.Radius, 64)
	if err != nil || radiusKM <= 0 {
		radiusKM = 0 // service substitutes the configured default
	}

	if q.Mode == "areas" {
		areas, err := h.svc.Areas(c.Request.Context(), lat, lng, radiusKM)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, areas)
		return
	}

	listings, err := h.svc.Nearby(c.Request.Context(), lat, lng, radiusKM)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToResponses(listings))
}

// Search handles POST /api/v1/listings/search.
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	query, err := service.BuildQuery(req, h.val)
	if httpkit.HandleError(c, err) {
		return
	}

	result, err := h.svc.Search(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("X-Resolved-Via", string(result.ResolvedVia))
	httpkit.OK(c, transport.ToResponses(result.Listings))
}

func validCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
