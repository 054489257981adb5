package core

import (
	"context"
	"fmt"
	"strings"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

// maxSearchServices is the Firestore limit on array-contains-any values.
const maxSearchServices = 30

type searchService struct {
	userRepo db.UserRepository
}

// NewSearchService creates a SearchService.
func NewSearchService(userRepo db.UserRepository) SearchService {
	return &searchService{userRepo: userRepo}
}

// SearchProfiles lists other users sharing at least one of services (all
// users when services is empty) whose full name or email contains query,
// ignoring case.
func (s *searchService) SearchProfiles(ctx context.Context, currentUserID, query string, services []string) ([]*models.User, error) {
	if len(services) > maxSearchServices {
		services = services[:maxSearchServices]
	}
	users, err := s.userRepo.FindByServices(ctx, services)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*models.User, 0, len(users))
	for _, u := range users {
		if u.ID == currentUserID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.FullName()), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}
