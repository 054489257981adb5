package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// EventHandler lists events and records RSVPs.
type EventHandler struct {
	eventService core.EventService
	logger       *zap.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(es core.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{eventService: es, logger: logger}
}

func (h *EventHandler) mapEventErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Event not found", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidRSVP):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid RSVP status", Details: err.Error()})
	default:
		h.logger.Error("Event request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListEvents handles GET /events.
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		h.mapEventErrorToStatus(c, err)
		return
	}
	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, newEventResponse(e, userID))
	}
	c.JSON(http.StatusOK, gin.H{"events": resp})
}

// GetEvent handles GET /events/:eventId.
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		h.mapEventErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(event, userID))
}

// RSVP handles POST /events/:eventId/rsvp. Only the caller's attendee key
// is written.
func (h *EventHandler) RSVP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.RSVPRequest
	if !BindJSON(c, &req) {
		return
	}
	event, err := h.eventService.HandleRSVP(c.Request.Context(), c.Param("eventId"), userID, req.Status)
	if err != nil {
		h.mapEventErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(event, userID))
}
