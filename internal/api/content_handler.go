package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// ContentHandler serves public read-only content.
type ContentHandler struct {
	testimonialService core.TestimonialService
	logger             *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(ts core.TestimonialService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{testimonialService: ts, logger: logger}
}

// ListTestimonials handles GET /testimonials. An empty store yields the
// built-in set, never an empty list.
func (h *ContentHandler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.testimonialService.ListTestimonials(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list testimonials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load testimonials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}

// ListServices handles GET /services.
func (h *ContentHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": models.CoachingServices()})
}

// ListVideos handles GET /videos: the built-in topic videos grouped by
// coaching service.
func (h *ContentHandler) ListVideos(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": core.GroupVideos(core.VideoCatalog())})
}
