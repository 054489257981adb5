package core

import (
	"context"
	"time"

	"coaching-backend/internal/models"
	"coaching-backend/internal/payments"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID. If the user doesn't exist, it writes
	// the default record and returns it with created=true.
	GetOrCreate(ctx context.Context, identity models.Identity) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// GoalService persists the per-user goals array.
type GoalService interface {
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	AddGoal(ctx context.Context, userID string, fields models.GoalFields) (*models.Goal, []models.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, fields models.GoalFields) (*models.Goal, []models.Goal, error)
	ToggleCompletion(ctx context.Context, userID, goalID string) (*models.Goal, []models.Goal, error)
	// SaveGoals overwrites the stored array with goals.
	SaveGoals(ctx context.Context, userID string, goals []models.Goal) error
}

// JournalService persists the per-user journal entries array.
type JournalService interface {
	ListEntries(ctx context.Context, userID string) ([]models.JournalEntry, error)
	AddEntry(ctx context.Context, userID string, req models.CreateJournalEntryRequest) (*models.JournalEntry, error)
}

// EventService lists events and records RSVPs.
type EventService interface {
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	HandleRSVP(ctx context.Context, eventID, userID string, status models.RSVPStatus) (*models.Event, error)
}

// TestimonialService serves testimonials with a built-in fallback set.
type TestimonialService interface {
	ListTestimonials(ctx context.Context) ([]*models.Testimonial, error)
}

// ProfileService edits the profile and assessment fields of users/{uid}.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	SubmitAssessment(ctx context.Context, userID, email string, req models.AssessmentRequest) (*AssessmentResult, error)
}

// SearchService finds other members by name, email or shared services.
type SearchService interface {
	SearchProfiles(ctx context.Context, currentUserID, query string, services []string) ([]*models.User, error)
}

// BillingService handles plan selection, checkout and processor webhooks.
type BillingService interface {
	Plans() []models.Plan
	SelectPlan(ctx context.Context, userID string, planID models.PlanID) (*PlanSelection, error)
	CreateSubscription(ctx context.Context, userID, email string, req models.CreateSubscriptionRequest) (string, error)
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	RouteCheckoutResult(result models.CheckoutResult) CheckoutRoute
	HandleStripeWebhook(ctx context.Context, signature string, payload []byte) error
}

// SupportService forwards help requests to the support inbox.
type SupportService interface {
	SendSupportMessage(ctx context.Context, userID, email string, req models.SupportRequest) (*SupportResult, error)
}

// AuthService wraps the auth backend with form validation and first-login
// record creation.
type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.Identity, *models.User, error)
	SignIn(ctx context.Context, req models.SignInRequest) (*models.Identity, *models.User, error)
	SignInWithOAuth(ctx context.Context, req models.OAuthRequest) (*models.Identity, *models.User, error)
	ResetPassword(ctx context.Context, email string) error
}

// AuthBackend is the identity provider. Errors carry the provider's message.
type AuthBackend interface {
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (*models.Identity, error)
	SendPasswordReset(ctx context.Context, email string) error
	SignInWithIdP(ctx context.Context, provider, idToken string) (*models.Identity, error)
}

// PaymentProcessor is the subset of the payment API used for checkout.
type PaymentProcessor interface {
	FindOrCreateCustomer(ctx context.Context, email, userID string) (string, error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (*payments.SubscriptionResult, error)
	ParseWebhook(payload []byte, signature string) (*payments.WebhookEvent, error)
}

// Publisher hands a message to a queue.
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time
