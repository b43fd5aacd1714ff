package service

import (
	"net/http"

	"github.com/acadex/research-scraper/internal/pkg/response"
	"github.com/acadex/research-scraper/internal/scraper/types"
	"github.com/gin-gonic/gin"
)

// Handler exposes the scrape service over HTTP.
type Handler struct {
	service *ScrapeService
}

// NewHandler creates an HTTP handler for the scrape service.
func NewHandler(service *ScrapeService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the API routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scrape", h.Scrape)
	rg.GET("/sources", h.Sources)
}

// Scrape handles POST /api/v1/scrape. The aggregated response is returned
// as-is rather than wrapped in the envelope; partial failure is still a
// 200 with per-source error detail inside.
func (h *Handler) Scrape(c *gin.Context) {
	var req types.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Scrape(c.Request.Context(), &req)
	if err != nil {
		if IsValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Sources handles GET /api/v1/sources.
func (h *Handler) Sources(c *gin.Context) {
	resp, err := h.service.Sources()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	resp, err := h.service.Health()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}
