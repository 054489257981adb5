package db

import (
	"context"
	"errors"
	"fmt"

	"coaching-backend/internal/models"
)

type subscriptionRepository struct {
	store DocumentStore
}

// NewSubscriptionRepository creates a SubscriptionRepository on top of a DocumentStore.
func NewSubscriptionRepository(store DocumentStore) SubscriptionRepository {
	return &subscriptionRepository{store: store}
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	data, err := r.store.Get(ctx, SubscriptionsCollection, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("subscription for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription for user '%s': %w", userID, err)
	}
	var sub models.Subscription
	if err := Decode(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription for user '%s': %w", userID, err)
	}
	sub.UserID = userID
	return &sub, nil
}

// Save merge-writes the subscription document keyed by sub.UserID.
func (r *subscriptionRepository) Save(ctx context.Context, sub *models.Subscription) error {
	if sub.UserID == "" {
		return errors.New("subscription user ID cannot be empty")
	}
	if err := r.store.Merge(ctx, SubscriptionsCollection, sub.UserID, sub.ToFirestore()); err != nil {
		return fmt.Errorf("failed to save subscription for user '%s': %w", sub.UserID, err)
	}
	return nil
}

func (r *subscriptionRepository) FindByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error) {
	docs, err := r.store.Query(ctx, SubscriptionsCollection, Query{
		Filters: []Filter{{Path: "stripeSubscriptionId", Op: OpEqual, Value: stripeSubscriptionID}},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("subscription '%s': %w", stripeSubscriptionID, ErrNotFound)
	}
	var sub models.Subscription
	if err := docs[0].DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription '%s': %w", docs[0].ID, err)
	}
	sub.UserID = docs[0].ID
	return &sub, nil
}
