package models

import "time"

// UserTypeDefault is the type assigned to every self-registered account.
const UserTypeDefault = "user"

// User is the denormalized profile stored at users/{uid}.
type User struct {
	ID               string    `json:"id" firestore:"id"`
	Email            string    `json:"email" firestore:"email"`
	FirstName        string    `json:"firstName" firestore:"firstName"`
	LastName         string    `json:"lastName" firestore:"lastName"`
	Bio              string    `json:"bio,omitempty" firestore:"bio"`
	ProfilePicURL    string    `json:"profilePic_url" firestore:"profilePic_url"`
	Subscription     string    `json:"subscription" firestore:"subscription"` // "" or a PlanID
	Type             string    `json:"type" firestore:"type"`
	Services         []string  `json:"services,omitempty" firestore:"services"`
	Introduction     string    `json:"introduction,omitempty" firestore:"introduction"`
	Description      string    `json:"description,omitempty" firestore:"description"`
	SelectedServices []string  `json:"selectedServices,omitempty" firestore:"selectedServices"`
	CreatedAt        time.Time `json:"createdAt,omitempty" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty" firestore:"updatedAt"`
}

// NewDefaultUser builds the record written on first sign-in: empty names,
// empty subscription and the default account type.
func NewDefaultUser(id, email string) *User {
	return &User{
		ID:           id,
		Email:        email,
		FirstName:    "",
		LastName:     "",
		Subscription: "",
		Type:         UserTypeDefault,
	}
}

// FullName joins first and last name with a single space.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ToFirestore returns the full document body for users/{uid}.
func (u *User) ToFirestore() map[string]interface{} {
	data := map[string]interface{}{
		"id":             u.ID,
		"email":          u.Email,
		"firstName":      u.FirstName,
		"lastName":       u.LastName,
		"profilePic_url": u.ProfilePicURL,
		"subscription":   u.Subscription,
		"type":           u.Type,
	}
	if u.Bio != "" {
		data["bio"] = u.Bio
	}
	if u.Services != nil {
		data["services"] = u.Services
	}
	if u.Introduction != "" {
		data["introduction"] = u.Introduction
	}
	if u.Description != "" {
		data["description"] = u.Description
	}
	if u.SelectedServices != nil {
		data["selectedServices"] = u.SelectedServices
	}
	if !u.CreatedAt.IsZero() {
		data["createdAt"] = u.CreatedAt
	}
	if !u.UpdatedAt.IsZero() {
		data["updatedAt"] = u.UpdatedAt
	}
	return data
}
