package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

var ErrInvalidAssessment = errors.New("invalid assessment")

// NextRouteMainTabs is the screen shown after onboarding or a successful checkout.
const NextRouteMainTabs = "main-tabs"

// AssessmentResult is returned after an assessment is stored. The form
// switches to read-only display.
type AssessmentResult struct {
	Profile   *models.User `json:"profile"`
	ReadOnly  bool         `json:"readOnly"`
	EditMode  bool         `json:"isEditMode"`
	NextRoute string       `json:"nextRoute,omitempty"`
}

type profileService struct {
	userRepo db.UserRepository
	now      Clock
}

// NewProfileService creates a ProfileService. A nil clock means time.Now.
func NewProfileService(userRepo db.UserRepository, now Clock) ProfileService {
	if now == nil {
		now = time.Now
	}
	return &profileService{userRepo: userRepo, now: now}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile '%s': %w", userID, err)
	}
	return user, nil
}

// UpdateProfile merge-writes the edited profile fields. Name is split on
// the first space into first and last name. An empty picture URL keeps the
// stored one.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	firstName, lastName := SplitName(req.Name)
	fields := map[string]interface{}{
		"firstName": firstName,
		"lastName":  lastName,
		"bio":       req.Bio,
		"updatedAt": s.now().UTC(),
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.ProfilePicURL != "" {
		fields["profilePic_url"] = req.ProfilePicURL
	}
	if req.Services != nil {
		fields["services"] = req.Services
	}

	if err := s.userRepo.Merge(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update profile '%s': %w", userID, err)
	}
	return s.GetProfile(ctx, userID)
}

// SubmitAssessment stores introduction, description and selected services.
// In edit mode only those fields and updatedAt are written; a first
// submission also stamps email and createdAt. The selected services are
// mirrored into services so profile search finds the user.
func (s *profileService) SubmitAssessment(ctx context.Context, userID, email string, req models.AssessmentRequest) (*AssessmentResult, error) {
	if strings.TrimSpace(req.Introduction) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: introduction and description are required", ErrInvalidAssessment)
	}
	if len(req.SelectedServices) == 0 {
		return nil, fmt.Errorf("%w: select at least one service", ErrInvalidAssessment)
	}
	for _, id := range req.SelectedServices {
		if _, ok := models.LookupCoachingService(id); !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownService, id)
		}
	}

	now := s.now().UTC()
	fields := map[string]interface{}{
		"introduction":     req.Introduction,
		"description":      req.Description,
		"selectedServices": req.SelectedServices,
		"services":         req.SelectedServices,
		"updatedAt":        now,
	}
	if !req.EditMode {
		fields["id"] = userID
		fields["createdAt"] = now
		if email != "" {
			fields["email"] = email
		}
	}

	if err := s.userRepo.Merge(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to save assessment for '%s': %w", userID, err)
	}
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &AssessmentResult{Profile: profile, ReadOnly: true, EditMode: false}
	if !req.EditMode {
		result.NextRoute = NextRouteMainTabs
	}
	return result, nil
}

// SplitName splits a display name on its first space.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	first, last, _ = strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}
