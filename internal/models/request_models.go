package models

// GoalFields carries the user-editable part of a goal.
type GoalFields struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline" binding:"required"`
	Service     string   `json:"service" binding:"required"`
	Type        GoalType `json:"type" binding:"required,oneof=short-term long-term"`
}

// CreateJournalEntryRequest is the body of POST /journal.
type CreateJournalEntryRequest struct {
	Entry  string `json:"entry" binding:"required"`
	GoalID string `json:"goalId,omitempty"`
}

// RSVPRequest is the body of POST /events/:eventId/rsvp.
type RSVPRequest struct {
	Status RSVPStatus `json:"status" binding:"required,oneof=yes no interested"`
}

// UpdateProfileRequest is the body of PUT /profile. Name is split on the
// first space into first and last name.
type UpdateProfileRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Bio           string   `json:"bio"`
	ProfilePicURL string   `json:"profilePic_url"`
	Services      []string `json:"services"`
}

// AssessmentRequest is the body of POST /profile/assessment.
type AssessmentRequest struct {
	Introduction     string   `json:"introduction" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	SelectedServices []string `json:"selectedServices" binding:"required,min=1"`
	EditMode         bool     `json:"isEditMode"`
}

// SignUpRequest is the body of POST /auth/signup.
// Validation happens in the auth service so every field error is reported
// with its own message.
type SignUpRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,loose_email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// SignInRequest is the body of POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OAuthRequest is the body of POST /auth/oauth. Provider is "google.com" or "apple.com".
type OAuthRequest struct {
	Provider string `json:"provider" binding:"required,oneof=google.com apple.com"`
	IDToken  string `json:"idToken" binding:"required"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// CreateSubscriptionRequest is the body of POST /billing/subscriptions.
// Either PlanID or PriceID must be present.
type CreateSubscriptionRequest struct {
	PlanID  PlanID `json:"planId"`
	PriceID string `json:"priceId"`
}

// SelectPlanRequest is the body of POST /billing/plan.
type SelectPlanRequest struct {
	PlanID PlanID `json:"planId" binding:"required"`
}

// CheckoutResult is what the hosted payment sheet reported back.
type CheckoutResult struct {
	PlanID       PlanID `json:"planId"`
	Succeeded    bool   `json:"succeeded"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// SupportRequest is the body of POST /support.
type SupportRequest struct {
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `json:"message" binding:"required"`
}

// SupportMessage is the payload delivered to the support inbox, either
// directly or through the support queue.
type SupportMessage struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Category string `json:"category,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message"`
}

// SupportCategories are the categories offered on the help screen.
var SupportCategories = []string{
	"Technical Issue",
	"Account Access",
	"Billing",
	"Feature Request",
	"Bug Report",
	"Other",
}
