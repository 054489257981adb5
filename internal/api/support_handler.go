package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/middleware"
	"coaching-backend/internal/models"
)

// SupportHandler forwards help requests.
type SupportHandler struct {
	supportService core.SupportService
	logger         *zap.Logger
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(ss core.SupportService, logger *zap.Logger) *SupportHandler {
	return &SupportHandler{supportService: ss, logger: logger}
}

// Categories handles GET /support/categories.
func (h *SupportHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.SupportCategories})
}

// SendMessage handles POST /support. The response always carries the
// success flag the help screen shows.
func (h *SupportHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.SupportRequest
	if !BindJSON(c, &req) {
		return
	}
	result, err := h.supportService.SendSupportMessage(c.Request.Context(), userID, c.GetString(middleware.ContextUserEmail), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptySupportMessage):
			c.JSON(http.StatusBadRequest, core.SupportResult{Success: false, Message: "Please enter a message"})
		case errors.Is(err, core.ErrSupportUnavailable):
			c.JSON(http.StatusServiceUnavailable, core.SupportResult{Success: false, Message: "Support is currently unavailable"})
		default:
			h.logger.Error("Support message failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, core.SupportResult{Success: false, Message: "Failed to send message. Please try again later."})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
