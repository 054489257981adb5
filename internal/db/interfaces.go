package db

import (
	"context"

	"coaching-backend/internal/models"
)

// UserRepository defines the storage operations for users/{uid}.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// Merge writes only the given fields.
	Merge(ctx context.Context, userID string, fields map[string]interface{}) error
	// FindByServices returns users whose services array shares at least one tag.
	// An empty services slice lists every user.
	FindByServices(ctx context.Context, services []string) ([]*models.User, error)
}

// GoalRepository reads and writes the per-user goals array.
type GoalRepository interface {
	Fetch(ctx context.Context, userID string) ([]models.Goal, error)
	Save(ctx context.Context, userID string, goals []models.Goal) error
}

// JournalRepository reads and writes the per-user journal entries array.
type JournalRepository interface {
	Fetch(ctx context.Context, userID string) ([]models.JournalEntry, error)
	Save(ctx context.Context, userID string, entries []models.JournalEntry) error
}

// EventRepository defines the storage operations for the shared events collection.
type EventRepository interface {
	// List returns all events ordered by start date.
	List(ctx context.Context) ([]*models.Event, error)
	GetByID(ctx context.Context, eventID string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) (string, error)
	// SetRSVP merge-writes attendees.{userID} only.
	SetRSVP(ctx context.Context, eventID, userID string, status models.RSVPStatus) error
}

// TestimonialRepository defines the storage operations for testimonials.
type TestimonialRepository interface {
	List(ctx context.Context) ([]*models.Testimonial, error)
	Create(ctx context.Context, t *models.Testimonial) (string, error)
}

// SubscriptionRepository defines the storage operations for subscriptions/{uid}.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	Save(ctx context.Context, sub *models.Subscription) error
	FindByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error)
}
