package db

import (
	"context"
	"errors"
	"fmt"

	"coaching-backend/internal/models"
)

type eventRepository struct {
	store DocumentStore
}

// NewEventRepository creates an EventRepository on top of a DocumentStore.
func NewEventRepository(store DocumentStore) EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) List(ctx context.Context) ([]*models.Event, error) {
	docs, err := r.store.Query(ctx, EventsCollection, Query{OrderBy: "startDate"})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	events := make([]*models.Event, 0, len(docs))
	for _, doc := range docs {
		var e models.Event
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("failed to decode event '%s': %w", doc.ID, err)
		}
		e.ID = doc.ID
		events = append(events, &e)
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	if eventID == "" {
		return nil, errors.New("eventID cannot be empty")
	}
	data, err := r.store.Get(ctx, EventsCollection, eventID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("event with ID '%s' not found: %w", eventID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event with ID '%s': %w", eventID, err)
	}
	var e models.Event
	if err := Decode(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode event '%s': %w", eventID, err)
	}
	e.ID = eventID
	return &e, nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (string, error) {
	id, err := r.store.Add(ctx, EventsCollection, event.ToFirestore())
	if err != nil {
		return "", fmt.Errorf("failed to create event '%s': %w", event.Title, err)
	}
	event.ID = id
	return id, nil
}

func (r *eventRepository) SetRSVP(ctx context.Context, eventID, userID string, status models.RSVPStatus) error {
	payload := map[string]interface{}{
		"attendees": map[string]interface{}{userID: string(status)},
	}
	if err := r.store.Merge(ctx, EventsCollection, eventID, payload); err != nil {
		return fmt.Errorf("failed to store RSVP for event '%s': %w", eventID, err)
	}
	return nil
}
