package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/models"
)

func TestGoalRepositoryFetchDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewGoalRepository(store)

	goals, err := repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)

	// document present, array field missing
	require.NoError(t, store.Set(ctx, GoalsCollection, "u1", map[string]interface{}{"other": 1}))
	goals, err = repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalRepositorySaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewGoalRepository(store)
	require.NoError(t, store.Set(ctx, GoalsCollection, "u1", map[string]interface{}{"owner": "u1"}))

	want := []models.Goal{
		{ID: "1", Title: "Run", Deadline: "2030-01-01T00:00:00Z", Service: "health", Type: models.GoalShortTerm},
		{ID: "2", Title: "Promotion", Deadline: "2031-01-01T00:00:00Z", Service: "career", Type: models.GoalLongTerm, Completed: true},
	}
	require.NoError(t, repo.Save(ctx, "u1", want))

	got, err := repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := store.Get(ctx, GoalsCollection, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", raw["owner"])
}

func TestGoalRepositoryLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(NewMemoryStore())

	first := []models.Goal{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	second := []models.Goal{{ID: "3", Title: "C"}}
	require.NoError(t, repo.Save(ctx, "u1", first))
	require.NoError(t, repo.Save(ctx, "u1", second))

	got, err := repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestJournalRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository(NewMemoryStore())

	entries := []models.JournalEntry{
		{ID: "2", UserID: "u1", Entry: "second", Timestamp: "2024-01-02T00:00:00Z", GoalID: "g1"},
		{ID: "1", UserID: "u1", Entry: "first", Timestamp: "2024-01-01T00:00:00Z"},
	}
	require.NoError(t, repo.Save(ctx, "u1", entries))
	got, err := repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore())

	_, err := repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, models.NewDefaultUser("u1", "a@example.com")))
	require.NoError(t, repo.Merge(ctx, "u1", map[string]interface{}{"services": []string{"career"}, "firstName": "Ada"}))
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u2", Email: "b@example.com", Type: "user", Services: []string{"health"}}))

	u, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, models.UserTypeDefault, u.Type)
	assert.Equal(t, []string{"career"}, u.Services)

	found, err := repo.FindByServices(ctx, []string{"career"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "u1", found[0].ID)

	all, err := repo.FindByServices(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEventRepositoryRSVPMergesOnlyOwnKey(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(NewMemoryStore())
	start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

	id, err := repo.Create(ctx, &models.Event{
		Title: "Workshop", StartDate: start, EndDate: start.Add(time.Hour), Capacity: 10,
		Attendees: map[string]models.RSVPStatus{"other": models.RSVPYes},
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetRSVP(ctx, id, "me", models.RSVPInterested))
	require.NoError(t, repo.SetRSVP(ctx, id, "me", models.RSVPYes))

	e, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Workshop", e.Title)
	assert.True(t, start.Equal(e.StartDate))
	assert.Equal(t, models.RSVPYes, e.RSVPFor("me"))
	assert.Equal(t, models.RSVPYes, e.RSVPFor("other"))
	assert.Equal(t, 2, e.AttendeeCount())
}

func TestEventRepositoryListOrdersByStart(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(NewMemoryStore())
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"late", "early", "middle"} {
		offset := []int{3, 1, 2}[i]
		_, err := repo.Create(ctx, &models.Event{Title: title, StartDate: base.AddDate(0, 0, offset)})
		require.NoError(t, err)
	}

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "early", events[0].Title)
	assert.Equal(t, "middle", events[1].Title)
	assert.Equal(t, "late", events[2].Title)
}

func TestSubscriptionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository(NewMemoryStore())
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &models.Subscription{
		UserID: "u1", StripeCustomerID: "cus_1", StripeSubscriptionID: "sub_1",
		Status: "incomplete", PriceID: "price_premium_monthly", PlanID: "premium",
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repo.Save(ctx, &models.Subscription{UserID: "u1", StripeCustomerID: "cus_1", StripeSubscriptionID: "sub_1", Status: "active", PriceID: "price_premium_monthly", UpdatedAt: now}))

	sub, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, "premium", sub.PlanID)
	assert.True(t, now.Equal(sub.CreatedAt))

	found, err := repo.FindByStripeSubscriptionID(ctx, "sub_1")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	_, err = repo.FindByStripeSubscriptionID(ctx, "sub_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
