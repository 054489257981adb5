package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"coaching-backend/internal/cache"
	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidRSVP   = errors.New("invalid RSVP status")
)

const eventsCacheKey = "events:list"

type eventService struct {
	eventRepo db.EventRepository
	cache     cache.Cache
	cacheTTL  time.Duration
	now       Clock
	logger    *zap.Logger
}

// NewEventService creates an EventService. The cache may be nil.
func NewEventService(eventRepo db.EventRepository, c cache.Cache, cacheTTL time.Duration, now Clock, logger *zap.Logger) EventService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &eventService{eventRepo: eventRepo, cache: c, cacheTTL: cacheTTL, now: now, logger: logger}
}

// ListEvents returns all events ordered by start date. An empty collection
// is seeded with the fallback events first.
func (s *eventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	if s.cache != nil {
		var cached []*models.Event
		if err := cache.GetJSON(ctx, s.cache, eventsCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Failed to read events from cache", zap.Error(err))
		}
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if len(events) == 0 {
		events, err = s.seed(ctx)
		if err != nil {
			return nil, err
		}
	}

	s.store(ctx, events)
	return events, nil
}

func (s *eventService) seed(ctx context.Context) ([]*models.Event, error) {
	events := FallbackEvents(s.now())
	for _, e := range events {
		if _, err := s.eventRepo.Create(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to seed events: %w", err)
		}
	}
	s.logger.Info("Seeded fallback events", zap.Int("count", len(events)))
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrEventNotFound, eventID)
		}
		return nil, err
	}
	return event, nil
}

// HandleRSVP merge-writes the caller's attendee entry and returns the
// event as stored afterwards.
func (s *eventService) HandleRSVP(ctx context.Context, eventID, userID string, status models.RSVPStatus) (*models.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidRSVP, status)
	}
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if err := s.eventRepo.SetRSVP(ctx, eventID, userID, status); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetEvent(ctx, eventID)
}

func (s *eventService) store(ctx context.Context, events []*models.Event) {
	if s.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, eventsCacheKey, events, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache events", zap.Error(err))
	}
}

func (s *eventService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, eventsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate events cache", zap.Error(err))
	}
}
