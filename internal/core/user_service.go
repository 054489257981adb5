package core

import (
	"context"
	"errors"
	"fmt"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserCreate wraps a failed write of the default user record.
	ErrUserCreate = errors.New("failed to create user record")
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetOrCreate looks up users/{uid}. An absent record is replaced by the
// default one (empty names, empty subscription, type "user"); a present
// record is returned as-is.
func (s *userService) GetOrCreate(ctx context.Context, identity models.Identity) (*models.User, bool, error) {
	if identity.UID == "" {
		return nil, false, errors.New("identity has no UID")
	}

	user, err := s.userRepo.GetByID(ctx, identity.UID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", identity.UID, err)
	}

	newUser := models.NewDefaultUser(identity.UID, identity.Email)
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, false, fmt.Errorf("%w (id: %s): %w", ErrUserCreate, identity.UID, err)
	}
	return newUser, true, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}
