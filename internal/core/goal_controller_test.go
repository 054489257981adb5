package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

func TestPartitionGoals(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	goals := []models.Goal{
		{ID: "1", Title: "active career", Service: "career", Deadline: "2025-02-01T00:00:00Z"},
		{ID: "2", Title: "expired health", Service: "health", Deadline: "2025-01-01T00:00:00Z"},
		{ID: "3", Title: "done health", Service: "health", Deadline: "2025-03-01T00:00:00Z", Completed: true},
		{ID: "4", Title: "active health", Service: "health", Deadline: "2025-03-01"},
		{ID: "5", Title: "active career 2", Service: "career", Deadline: "2025-06-01"},
	}

	sections := PartitionGoals(goals, now)
	require.Len(t, sections, 3)

	assert.Equal(t, "career", sections[0].ServiceID)
	assert.Equal(t, "Career", sections[0].Title)
	assert.Equal(t, []string{"1", "5"}, goalIDs(sections[0].Goals))

	assert.Equal(t, "health", sections[1].ServiceID)
	assert.Equal(t, []string{"4"}, goalIDs(sections[1].Goals))

	assert.Equal(t, CompletedSectionTitle, sections[2].Title)
	assert.Equal(t, []string{"2", "3"}, goalIDs(sections[2].Goals))
}

func TestPartitionGoalsExpiredNeverActive(t *testing.T) {
	now := time.Now()
	for _, svc := range models.CoachingServices() {
		g := models.Goal{ID: svc.ID, Service: svc.ID, Deadline: now.Add(-time.Minute).Format(time.RFC3339Nano)}
		sections := PartitionGoals([]models.Goal{g}, now)
		require.Len(t, sections, 1)
		assert.Equal(t, CompletedSectionTitle, sections[0].Title)
		assert.Empty(t, sections[0].ServiceID)
	}
}

func TestGoalControllerModalFlow(t *testing.T) {
	ctx := context.Background()
	svc := NewGoalService(db.NewGoalRepository(db.NewMemoryStore()), nil)
	c := NewGoalController(svc, "u1")
	require.NoError(t, c.Load(ctx))

	c.OpenNew()
	st := c.State()
	assert.True(t, st.ModalOpen)
	assert.Nil(t, st.EditingGoal)

	created, err := c.Submit(ctx, validGoal("Read a book", "personal"))
	require.NoError(t, err)
	assert.False(t, c.State().ModalOpen)

	require.NoError(t, c.Edit(created.ID))
	st = c.State()
	require.NotNil(t, st.EditingGoal)
	assert.Equal(t, created.ID, st.EditingGoal.ID)

	edited, err := c.Submit(ctx, validGoal("Read two books", "personal"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Read two books", edited.Title)

	st = c.State()
	assert.False(t, st.ModalOpen)
	assert.Nil(t, st.EditingGoal)
	require.Len(t, st.Goals, 1)

	assert.ErrorIs(t, c.Edit("nope"), ErrGoalNotFound)

	_, err = c.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err)
	sections := c.Sections(time.Now())
	require.Len(t, sections, 1)
	assert.Equal(t, CompletedSectionTitle, sections[0].Title)
}

func TestGoalControllerWritesLocalArray(t *testing.T) {
	ctx := context.Background()
	repo := db.NewGoalRepository(db.NewMemoryStore())
	svc := NewGoalService(repo, nil)

	first, _, err := svc.AddGoal(ctx, "u1", validGoal("Goal A", "career"))
	require.NoError(t, err)

	c := NewGoalController(svc, "u1")
	require.NoError(t, c.Load(ctx))

	// A second session adds a goal after this controller loaded.
	_, _, err = svc.AddGoal(ctx, "u1", validGoal("Goal B", "health"))
	require.NoError(t, err)

	toggled, err := c.ToggleCompletion(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	stored, err := repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, c.State().Goals, stored)
	require.Len(t, stored, 1)
	assert.Equal(t, "Goal A", stored[0].Title)

	added, err := c.AddGoal(ctx, validGoal("Goal C", "personal"))
	require.NoError(t, err)
	stored, err = repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, added.ID}, goalIDs(stored))
	assert.Equal(t, c.State().Goals, stored)
}

func TestGoalControllerRejectsInvalidFields(t *testing.T) {
	ctx := context.Background()
	repo := db.NewGoalRepository(db.NewMemoryStore())
	c := NewGoalController(NewGoalService(repo, nil), "u1")
	require.NoError(t, c.Load(ctx))

	_, err := c.AddGoal(ctx, models.GoalFields{Title: " ", Deadline: "2030-01-01", Service: "career", Type: models.GoalShortTerm})
	assert.ErrorIs(t, err, ErrInvalidGoal)
	_, err = c.ToggleCompletion(ctx, "missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)

	stored, err := repo.Fetch(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func goalIDs(goals []models.Goal) []string {
	ids := make([]string, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	return ids
}
