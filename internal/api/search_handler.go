package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
)

// SearchHandler finds other members.
type SearchHandler struct {
	searchService core.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(ss core.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{searchService: ss, logger: logger}
}

// SearchProfiles handles GET /search?q=&services=career,health. Without
// services every other member is a candidate.
func (h *SearchHandler) SearchProfiles(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var services []string
	for _, s := range strings.Split(c.Query("services"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			services = append(services, s)
		}
	}

	users, err := h.searchService.SearchProfiles(c.Request.Context(), userID, c.Query("q"), services)
	if err != nil {
		h.logger.Error("Profile search failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to search profiles"})
		return
	}
	results := make([]ProfileSummary, 0, len(users))
	for _, u := range users {
		results = append(results, ProfileSummary{
			ID:            u.ID,
			Name:          u.FullName(),
			Bio:           u.Bio,
			ProfilePicURL: u.ProfilePicURL,
			Services:      u.Services,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
