package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coaching-backend/internal/db"
	"coaching-backend/internal/models"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrInvalidGoal    = errors.New("invalid goal")
	ErrUnknownService = errors.New("unknown coaching service")
)

type goalService struct {
	goalRepo db.GoalRepository
	now      Clock
	ids      timestampIDs
}

// NewGoalService creates a GoalService. A nil clock means time.Now.
func NewGoalService(goalRepo db.GoalRepository, now Clock) GoalService {
	if now == nil {
		now = time.Now
	}
	return &goalService{goalRepo: goalRepo, now: now}
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	goals, err := s.goalRepo.Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals for user '%s': %w", userID, err)
	}
	return goals, nil
}

// AddGoal appends a goal with a millisecond timestamp id and writes the full array.
func (s *goalService) AddGoal(ctx context.Context, userID string, fields models.GoalFields) (*models.Goal, []models.Goal, error) {
	if err := validateGoalFields(fields); err != nil {
		return nil, nil, err
	}
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	goal := newGoal(s.ids.next(s.now(), goalIDSet(goals)), fields)
	goals = append(goals, goal)

	if err := s.goalRepo.Save(ctx, userID, goals); err != nil {
		return nil, nil, fmt.Errorf("failed to save goals for user '%s': %w", userID, err)
	}
	return &goal, goals, nil
}

// UpdateGoal replaces the editable fields of one goal. Completion is kept.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, fields models.GoalFields) (*models.Goal, []models.Goal, error) {
	if err := validateGoalFields(fields); err != nil {
		return nil, nil, err
	}
	return s.mutate(ctx, userID, goalID, setGoalFields(fields))
}

// ToggleCompletion flips the completed flag of one goal.
func (s *goalService) ToggleCompletion(ctx context.Context, userID, goalID string) (*models.Goal, []models.Goal, error) {
	return s.mutate(ctx, userID, goalID, toggleGoal)
}

// SaveGoals writes goals as the user's full array.
func (s *goalService) SaveGoals(ctx context.Context, userID string, goals []models.Goal) error {
	if err := s.goalRepo.Save(ctx, userID, goals); err != nil {
		return fmt.Errorf("failed to save goals for user '%s': %w", userID, err)
	}
	return nil
}

func (s *goalService) mutate(ctx context.Context, userID, goalID string, apply func(*models.Goal)) (*models.Goal, []models.Goal, error) {
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	goals, idx, err := applyToGoal(goals, goalID, apply)
	if err != nil {
		return nil, nil, err
	}

	if err := s.goalRepo.Save(ctx, userID, goals); err != nil {
		return nil, nil, fmt.Errorf("failed to save goals for user '%s': %w", userID, err)
	}
	updated := goals[idx]
	return &updated, goals, nil
}

func newGoal(id string, fields models.GoalFields) models.Goal {
	return models.Goal{
		ID:          id,
		Title:       strings.TrimSpace(fields.Title),
		Description: strings.TrimSpace(fields.Description),
		Deadline:    fields.Deadline,
		Service:     fields.Service,
		Type:        fields.Type,
		Completed:   false,
	}
}

func setGoalFields(fields models.GoalFields) func(*models.Goal) {
	return func(g *models.Goal) {
		g.Title = strings.TrimSpace(fields.Title)
		g.Description = strings.TrimSpace(fields.Description)
		g.Deadline = fields.Deadline
		g.Service = fields.Service
		g.Type = fields.Type
	}
}

func toggleGoal(g *models.Goal) {
	g.Completed = !g.Completed
}

// applyToGoal returns a copy of goals with apply run on goalID, and the
// index of that goal in the copy.
func applyToGoal(goals []models.Goal, goalID string, apply func(*models.Goal)) ([]models.Goal, int, error) {
	for i := range goals {
		if goals[i].ID == goalID {
			out := append([]models.Goal(nil), goals...)
			apply(&out[i])
			return out, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: '%s'", ErrGoalNotFound, goalID)
}

func goalIDSet(goals []models.Goal) map[string]struct{} {
	taken := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		taken[g.ID] = struct{}{}
	}
	return taken
}

func validateGoalFields(f models.GoalFields) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	if f.Service == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidGoal)
	}
	if _, ok := models.LookupCoachingService(f.Service); !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownService, f.Service)
	}
	if f.Type != models.GoalShortTerm && f.Type != models.GoalLongTerm {
		return fmt.Errorf("%w: type must be short-term or long-term", ErrInvalidGoal)
	}
	if _, ok := (models.Goal{Deadline: f.Deadline}).DeadlineTime(); !ok {
		return fmt.Errorf("%w: deadline must be an ISO-8601 date", ErrInvalidGoal)
	}
	return nil
}
