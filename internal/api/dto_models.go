package api

import (
	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
// Backend messages are passed through in Details unchanged.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// GoalsResponse carries the stored goals and their display partition.
type GoalsResponse struct {
	Goals    []models.Goal      `json:"goals"`
	Sections []core.GoalSection `json:"sections"`
}

// GoalMutationResponse is returned by add, update and toggle.
type GoalMutationResponse struct {
	Goal  *models.Goal  `json:"goal"`
	Goals []models.Goal `json:"goals"`
}

// EventResponse decorates an event with the caller's RSVP and the number
// of attendees who said yes.
type EventResponse struct {
	*models.Event
	UserRSVP      models.RSVPStatus `json:"userRsvp,omitempty"`
	AttendeeCount int               `json:"attendeeCount"`
}

// CreateSubscriptionResponse hands the payment sheet its client secret.
type CreateSubscriptionResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// AuthResponse is returned by the sign-in and sign-up endpoints.
type AuthResponse struct {
	Identity *models.Identity `json:"identity"`
	User     *models.User     `json:"user"`
}

func newEventResponse(e *models.Event, userID string) EventResponse {
	return EventResponse{Event: e, UserRSVP: e.RSVPFor(userID), AttendeeCount: e.AttendeeCount()}
}

// AssessmentResponse is the stored assessment. Completed is true once an
// assessment exists, which the client shows read-only until edited.
type AssessmentResponse struct {
	Introduction     string   `json:"introduction"`
	Description      string   `json:"description"`
	SelectedServices []string `json:"selectedServices"`
	Completed        bool     `json:"completed"`
}

// ProfileSummary is the public part of another member's profile returned
// by search.
type ProfileSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Bio           string   `json:"bio,omitempty"`
	ProfilePicURL string   `json:"profilePic_url,omitempty"`
	Services      []string `json:"services,omitempty"`
}

func newAssessmentResponse(u *models.User) AssessmentResponse {
	services := u.SelectedServices
	if services == nil {
		services = []string{}
	}
	return AssessmentResponse{
		Introduction:     u.Introduction,
		Description:      u.Description,
		SelectedServices: services,
		Completed:        u.Introduction != "" || len(u.SelectedServices) > 0,
	}
}
