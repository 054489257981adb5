package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
	"coaching-backend/internal/session"
)

// SessionHandler initializes the signed-in user's session.
type SessionHandler struct {
	userService core.UserService
	goalService core.GoalService
	authService core.AuthService
	logger      *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(us core.UserService, gs core.GoalService, as core.AuthService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{userService: us, goalService: gs, authService: as, logger: logger}
}

func (h *SessionHandler) provider() *session.Provider {
	return session.NewProvider(h.userService, h.goalService, h.authService, h.logger)
}

// InitializeSession handles POST /session. The user record is created with
// defaults on first call (201); later calls return it unchanged (200). A
// failure answers 500 with the alert and the entry-screen redirect.
func (h *SessionHandler) InitializeSession(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	identity := identityFromContext(c)

	snap := h.provider().HandleIdentityChange(c.Request.Context(), &identity)
	switch {
	case snap.Alert != nil:
		c.JSON(http.StatusInternalServerError, snap)
	case snap.Created:
		c.JSON(http.StatusCreated, snap)
	default:
		c.JSON(http.StatusOK, snap)
	}
}

// ResetPassword handles POST /auth/reset-password. The backend's message is
// returned as-is on failure.
func (h *SessionHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !BindJSON(c, &req) {
		return
	}
	alert, err := h.provider().ResetPassword(c.Request.Context(), req.Email)
	if err != nil {
		status := http.StatusBadRequest
		if errorsIsAuthUnavailable(err) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, ErrorResponse{Error: alert.Title, Details: alert.Message})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Password reset email sent"})
}
