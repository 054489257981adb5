package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coaching-backend/internal/models"
)

// CompletedSectionTitle heads the section holding completed and expired goals.
const CompletedSectionTitle = "Completed & Past Goals"

// GoalSection is one display group of goals. ServiceID is empty for the
// completed and expired section.
type GoalSection struct {
	ServiceID string        `json:"serviceId,omitempty"`
	Title     string        `json:"title"`
	Goals     []models.Goal `json:"goals"`
}

// GoalControllerState is the editable state of the goals screen.
type GoalControllerState struct {
	Goals       []models.Goal `json:"goals"`
	ModalOpen   bool          `json:"modalOpen"`
	EditingGoal *models.Goal  `json:"editingGoal,omitempty"`
}

// GoalController holds a local copy of one user's goals. Every mutation is
// applied to the local copy, and the resulting array is written back whole,
// so the last writer wins.
type GoalController struct {
	service GoalService
	userID  string
	now     Clock
	ids     timestampIDs

	mu    sync.Mutex
	state GoalControllerState
}

// NewGoalController creates a controller for userID. Call Load before use.
func NewGoalController(service GoalService, userID string) *GoalController {
	return &GoalController{
		service: service,
		userID:  userID,
		now:     time.Now,
		state:   GoalControllerState{Goals: []models.Goal{}},
	}
}

// Load replaces the local copy with the stored goals.
func (c *GoalController) Load(ctx context.Context) error {
	goals, err := c.service.ListGoals(ctx, c.userID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Goals = goals
	c.mu.Unlock()
	return nil
}

// State returns a copy of the current state.
func (c *GoalController) State() GoalControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.Goals = append([]models.Goal(nil), c.state.Goals...)
	if c.state.EditingGoal != nil {
		g := *c.state.EditingGoal
		st.EditingGoal = &g
	}
	return st
}

// OpenNew opens the modal for a new goal.
func (c *GoalController) OpenNew() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ModalOpen = true
	c.state.EditingGoal = nil
}

// Edit opens the modal on an existing goal.
func (c *GoalController) Edit(goalID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Goals {
		if c.state.Goals[i].ID == goalID {
			g := c.state.Goals[i]
			c.state.EditingGoal = &g
			c.state.ModalOpen = true
			return nil
		}
	}
	return fmt.Errorf("%w: '%s'", ErrGoalNotFound, goalID)
}

// Close dismisses the modal.
func (c *GoalController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ModalOpen = false
	c.state.EditingGoal = nil
}

// Submit saves the modal: an update when a goal is being edited, otherwise
// a new goal. The modal is closed on success.
func (c *GoalController) Submit(ctx context.Context, fields models.GoalFields) (*models.Goal, error) {
	c.mu.Lock()
	editing := c.state.EditingGoal
	c.mu.Unlock()

	var (
		goal *models.Goal
		err  error
	)
	if editing != nil {
		goal, err = c.UpdateGoal(ctx, editing.ID, fields)
	} else {
		goal, err = c.AddGoal(ctx, fields)
	}
	if err != nil {
		return nil, err
	}
	c.Close()
	return goal, nil
}

// AddGoal appends a goal to the local copy and saves it.
func (c *GoalController) AddGoal(ctx context.Context, fields models.GoalFields) (*models.Goal, error) {
	if err := validateGoalFields(fields); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	goal := newGoal(c.ids.next(c.now(), goalIDSet(c.state.Goals)), fields)
	goals := make([]models.Goal, 0, len(c.state.Goals)+1)
	goals = append(goals, c.state.Goals...)
	goals = append(goals, goal)
	if err := c.service.SaveGoals(ctx, c.userID, goals); err != nil {
		return nil, err
	}
	c.state.Goals = goals
	return &goal, nil
}

func (c *GoalController) UpdateGoal(ctx context.Context, goalID string, fields models.GoalFields) (*models.Goal, error) {
	if err := validateGoalFields(fields); err != nil {
		return nil, err
	}
	return c.mutate(ctx, goalID, setGoalFields(fields))
}

func (c *GoalController) ToggleCompletion(ctx context.Context, goalID string) (*models.Goal, error) {
	return c.mutate(ctx, goalID, toggleGoal)
}

func (c *GoalController) mutate(ctx context.Context, goalID string, apply func(*models.Goal)) (*models.Goal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	goals, idx, err := applyToGoal(c.state.Goals, goalID, apply)
	if err != nil {
		return nil, err
	}
	if err := c.service.SaveGoals(ctx, c.userID, goals); err != nil {
		return nil, err
	}
	c.state.Goals = goals
	updated := goals[idx]
	return &updated, nil
}

// Sections partitions the local goals for display at now.
func (c *GoalController) Sections(now time.Time) []GoalSection {
	return PartitionGoals(c.State().Goals, now)
}

// PartitionGoals groups active goals by service in catalog order, dropping
// empty groups, and appends the completed and expired goals as a final
// section. A goal is active when it is neither completed nor past its
// deadline at now. Goals tagged with a service outside the catalog are
// grouped after the catalog services.
func PartitionGoals(goals []models.Goal, now time.Time) []GoalSection {
	active := make(map[string][]models.Goal)
	var order []string
	done := []models.Goal{}

	for _, g := range goals {
		if g.Completed || g.IsExpired(now) {
			done = append(done, g)
			continue
		}
		if _, seen := active[g.Service]; !seen {
			order = append(order, g.Service)
		}
		active[g.Service] = append(active[g.Service], g)
	}

	sections := make([]GoalSection, 0, len(active)+1)
	for _, svc := range models.CoachingServices() {
		if list, ok := active[svc.ID]; ok {
			sections = append(sections, GoalSection{ServiceID: svc.ID, Title: svc.Name, Goals: list})
			delete(active, svc.ID)
		}
	}
	for _, id := range order {
		if list, ok := active[id]; ok {
			sections = append(sections, GoalSection{ServiceID: id, Title: id, Goals: list})
		}
	}
	if len(done) > 0 {
		sections = append(sections, GoalSection{Title: CompletedSectionTitle, Goals: done})
	}
	return sections
}
