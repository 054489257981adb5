package models

import "time"

// Subscription mirrors the payment processor state for one user at subscriptions/{uid}.
type Subscription struct {
	UserID               string    `json:"userId" firestore:"-"`
	StripeCustomerID     string    `json:"stripeCustomerId" firestore:"stripeCustomerId"`
	StripeSubscriptionID string    `json:"stripeSubscriptionId" firestore:"stripeSubscriptionId"`
	Status               string    `json:"status" firestore:"status"`
	PriceID              string    `json:"priceId" firestore:"priceId"`
	PlanID               string    `json:"planId,omitempty" firestore:"planId"`
	CreatedAt            time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ToFirestore encodes the subscription document.
func (s *Subscription) ToFirestore() map[string]interface{} {
	data := map[string]interface{}{
		"stripeCustomerId":     s.StripeCustomerID,
		"stripeSubscriptionId": s.StripeSubscriptionID,
		"status":               s.Status,
		"priceId":              s.PriceID,
		"updatedAt":            s.UpdatedAt,
	}
	if s.PlanID != "" {
		data["planId"] = s.PlanID
	}
	if !s.CreatedAt.IsZero() {
		data["createdAt"] = s.CreatedAt
	}
	return data
}
