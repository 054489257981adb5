package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coaching-backend/internal/authbackend"
	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// AuthHandler exposes email/password and OAuth sign-in.
type AuthHandler struct {
	authService core.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as core.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: as, logger: logger}
}

func errorsIsAuthUnavailable(err error) bool {
	return errors.Is(err, core.ErrAuthUnavailable)
}

// mapAuthErrorToStatus maps auth errors to HTTP. Backend messages such as
// EMAIL_EXISTS or INVALID_PASSWORD are shown verbatim.
func (h *AuthHandler) mapAuthErrorToStatus(c *gin.Context, err error) {
	var verr *core.ValidationError
	var backendErr *authbackend.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: validationFields(verr)})
	case errors.Is(err, authbackend.ErrUnsupportedProvider):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &backendErr):
		status := http.StatusBadRequest
		if backendErr.Code >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		c.JSON(status, ErrorResponse{Error: "Authentication failed", Details: backendErr.Message})
	case errors.Is(err, core.ErrAuthUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Auth request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Authentication failed", Details: err.Error()})
	}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if !BindJSON(c, &req) {
		return
	}
	identity, user, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{Identity: identity, User: user})
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if !BindJSON(c, &req) {
		return
	}
	identity, user, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Identity: identity, User: user})
}

// OAuth handles POST /auth/oauth with a Google or Apple id token.
func (h *AuthHandler) OAuth(c *gin.Context) {
	var req models.OAuthRequest
	if !BindJSON(c, &req) {
		return
	}
	identity, user, err := h.authService.SignInWithOAuth(c.Request.Context(), req)
	if err != nil {
		h.mapAuthErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Identity: identity, User: user})
}
