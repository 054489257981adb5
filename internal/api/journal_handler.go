package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// JournalHandler handles the journal endpoints.
type JournalHandler struct {
	journalService core.JournalService
	logger         *zap.Logger
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(js core.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{journalService: js, logger: logger}
}

// ListEntries handles GET /journal. Newest entries come first.
func (h *JournalHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.journalService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list journal entries", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load journal entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// AddEntry handles POST /journal.
func (h *JournalHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateJournalEntryRequest
	if !BindJSON(c, &req) {
		return
	}
	entry, err := h.journalService.AddEntry(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrEmptyJournalEntry) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("Failed to add journal entry", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save journal entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}
