package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

// ErrAuthUnavailable is returned when no auth backend is configured.
var ErrAuthUnavailable = errors.New("auth backend is not configured")

type authService struct {
	backend  AuthBackend
	users    UserService
	userRepo db.UserRepository
	now      Clock
	logger   *zap.Logger
}

// NewAuthService creates an AuthService. backend may be nil; every call then
// fails with ErrAuthUnavailable.
func NewAuthService(backend AuthBackend, users UserService, userRepo db.UserRepository, now Clock, logger *zap.Logger) AuthService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{backend: backend, users: users, userRepo: userRepo, now: now, logger: logger}
}

// SignUp validates the form, creates the account and writes the user record
// with the submitted names. Backend errors are returned unchanged so their
// message reaches the client verbatim.
func (s *authService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.Identity, *models.User, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateForm(req, signUpMessages); err != nil {
		return nil, nil, err
	}
	if s.backend == nil {
		return nil, nil, ErrAuthUnavailable
	}

	identity, err := s.backend.SignUp(ctx, req.Email, req.Password, req.FirstName+" "+req.LastName)
	if err != nil {
		return nil, nil, err
	}
	identity.FirstName = req.FirstName
	identity.LastName = req.LastName

	user, _, err := s.users.GetOrCreate(ctx, *identity)
	if err != nil {
		return nil, nil, err
	}
	now := s.now().UTC()
	fields := map[string]interface{}{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"createdAt": now,
		"updatedAt": now,
	}
	if err := s.userRepo.Merge(ctx, identity.UID, fields); err != nil {
		return nil, nil, fmt.Errorf("failed to store names for user '%s': %w", identity.UID, err)
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.CreatedAt = now
	user.UpdatedAt = now

	s.logger.Info("User signed up", zap.String("userID", identity.UID))
	return identity, user, nil
}

func (s *authService) SignIn(ctx context.Context, req models.SignInRequest) (*models.Identity, *models.User, error) {
	if s.backend == nil {
		return nil, nil, ErrAuthUnavailable
	}
	identity, err := s.backend.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return nil, nil, err
	}
	user, _, err := s.users.GetOrCreate(ctx, *identity)
	if err != nil {
		return nil, nil, err
	}
	return identity, user, nil
}

// SignInWithOAuth exchanges a Google or Apple id token. First-time OAuth
// users get the default record with names taken from the display name.
func (s *authService) SignInWithOAuth(ctx context.Context, req models.OAuthRequest) (*models.Identity, *models.User, error) {
	if s.backend == nil {
		return nil, nil, ErrAuthUnavailable
	}
	identity, err := s.backend.SignInWithIdP(ctx, req.Provider, req.IDToken)
	if err != nil {
		return nil, nil, err
	}
	user, created, err := s.users.GetOrCreate(ctx, *identity)
	if err != nil {
		return nil, nil, err
	}
	if created && identity.DisplayName != "" {
		first, last := SplitName(identity.DisplayName)
		fields := map[string]interface{}{"firstName": first, "lastName": last}
		if identity.PhotoURL != "" {
			fields["profilePic_url"] = identity.PhotoURL
		}
		if err := s.userRepo.Merge(ctx, identity.UID, fields); err != nil {
			s.logger.Warn("Failed to store OAuth profile names", zap.String("userID", identity.UID), zap.Error(err))
		} else {
			user.FirstName, user.LastName = first, last
			if identity.PhotoURL != "" {
				user.ProfilePicURL = identity.PhotoURL
			}
		}
	}
	return identity, user, nil
}

// ResetPassword asks the backend to email a reset link.
func (s *authService) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Fields: map[string]string{"email": signUpMessages["email"]["required"]}}
	}
	if s.backend == nil {
		return ErrAuthUnavailable
	}
	return s.backend.SendPasswordReset(ctx, email)
}
