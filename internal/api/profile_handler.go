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

// ProfileHandler serves the profile and assessment screens.
type ProfileHandler struct {
	profileService core.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps core.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: ps, logger: logger}
}

func (h *ProfileHandler) mapProfileErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidAssessment), errors.Is(err, core.ErrUnknownService):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid assessment", Details: err.Error()})
	default:
		h.logger.Error("Profile request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// GetProfile handles GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !BindJSON(c, &req) {
		return
	}
	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetAssessment handles GET /profile/assessment.
func (h *ProfileHandler) GetAssessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssessmentResponse(user))
}

// SubmitAssessment handles POST /profile/assessment. The response tells the
// client to show the saved answers read-only and, on first submission, to
// move on to the main tabs.
func (h *ProfileHandler) SubmitAssessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.AssessmentRequest
	if !BindJSON(c, &req) {
		return
	}
	result, err := h.profileService.SubmitAssessment(c.Request.Context(), userID, c.GetString(middleware.ContextUserEmail), req)
	if err != nil {
		h.mapProfileErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
