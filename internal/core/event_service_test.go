package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/cache"
	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

func TestListEventsSeedsFallback(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := db.NewEventRepository(db.NewMemoryStore())
	svc := NewEventService(repo, nil, 0, fixedClock(now), nil)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, "Leadership Excellence Workshop", events[0].Title)
	assert.Equal(t, now.Add(7*24*time.Hour), events[0].StartDate)
	assert.Equal(t, 150*time.Minute, events[4].EndDate.Sub(events[4].StartDate))
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
	}

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 5)

	// a second listing must not seed again
	events, err = svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestHandleRSVP(t *testing.T) {
	ctx := context.Background()
	repo := db.NewEventRepository(db.NewMemoryStore())
	svc := NewEventService(repo, cache.NewMemoryCache(time.Minute), time.Minute, nil, nil)

	event := &models.Event{Title: "Mixer", StartDate: time.Now().Add(time.Hour), EndDate: time.Now().Add(2 * time.Hour), Capacity: 10}
	id, err := repo.Create(ctx, event)
	require.NoError(t, err)

	// prime the listing cache
	listed, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 0, listed[0].AttendeeCount())

	steps := []struct {
		user   string
		status models.RSVPStatus
		count  int
	}{
		{"alice", models.RSVPYes, 1},
		{"bob", models.RSVPInterested, 1},
		{"carol", models.RSVPYes, 2},
		{"alice", models.RSVPNo, 1},
		{"bob", models.RSVPYes, 2},
	}
	for _, st := range steps {
		got, err := svc.HandleRSVP(ctx, id, st.user, st.status)
		require.NoError(t, err)
		assert.Equal(t, st.status, got.RSVPFor(st.user))
		assert.Equal(t, st.count, got.AttendeeCount())
	}

	listed, err = svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listed[0].AttendeeCount(), "RSVP must invalidate the cached listing")
	assert.Equal(t, models.RSVPStatus(""), listed[0].RSVPFor("dave"))
}

func TestHandleRSVPErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(db.NewEventRepository(db.NewMemoryStore()), nil, 0, nil, nil)

	_, err := svc.HandleRSVP(ctx, "missing", "u1", models.RSVPYes)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.HandleRSVP(ctx, "missing", "u1", "maybe")
	assert.ErrorIs(t, err, ErrInvalidRSVP)
}

func TestListTestimonialsFallback(t *testing.T) {
	ctx := context.Background()

	svc := NewTestimonialService(db.NewTestimonialRepository(db.NewMemoryStore()), nil, 0, nil)
	list, err := svc.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Sarah Chen", list[0].Name)

	svc = NewTestimonialService(failingTestimonialRepo{err: assert.AnError}, nil, 0, nil)
	list, err = svc.ListTestimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestListTestimonialsFromStoreAndCache(t *testing.T) {
	ctx := context.Background()
	repo := db.NewTestimonialRepository(db.NewMemoryStore())
	_, err := repo.Create(ctx, &models.Testimonial{Name: "Ana", Rating: 4, Testimonial: "Great", Service: "career"})
	require.NoError(t, err)

	c := cache.NewMemoryCache(time.Minute)
	svc := NewTestimonialService(repo, c, time.Minute, nil)
	list, err := svc.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)

	_, err = repo.Create(ctx, &models.Testimonial{Name: "Ben", Rating: 5})
	require.NoError(t, err)
	list, err = svc.ListTestimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "served from cache")
}
