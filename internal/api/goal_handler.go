package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// GoalHandler handles the goals screen endpoints.
type GoalHandler struct {
	goalService core.GoalService
	logger      *zap.Logger
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(gs core.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{goalService: gs, logger: logger}
}

func (h *GoalHandler) mapGoalErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Goal not found", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidGoal), errors.Is(err, core.ErrUnknownService):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid goal", Details: err.Error()})
	default:
		h.logger.Error("Goal request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListGoals handles GET /goals. Sections are computed against the current
// time on every call; expiry is never stored.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		h.mapGoalErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, GoalsResponse{Goals: goals, Sections: core.PartitionGoals(goals, time.Now())})
}

// AddGoal handles POST /goals.
func (h *GoalHandler) AddGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var fields models.GoalFields
	if !BindJSON(c, &fields) {
		return
	}
	goal, goals, err := h.goalService.AddGoal(c.Request.Context(), userID, fields)
	if err != nil {
		h.mapGoalErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, GoalMutationResponse{Goal: goal, Goals: goals})
}

// UpdateGoal handles PUT /goals/:goalId.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var fields models.GoalFields
	if !BindJSON(c, &fields) {
		return
	}
	goal, goals, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("goalId"), fields)
	if err != nil {
		h.mapGoalErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, GoalMutationResponse{Goal: goal, Goals: goals})
}

// ToggleCompletion handles POST /goals/:goalId/toggle.
func (h *GoalHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goal, goals, err := h.goalService.ToggleCompletion(c.Request.Context(), userID, c.Param("goalId"))
	if err != nil {
		h.mapGoalErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, GoalMutationResponse{Goal: goal, Goals: goals})
}
