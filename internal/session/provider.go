// Package session tracks the signed-in identity and its denormalized user
// record, and tells subscribers whenever either changes.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"coaching-backend/internal/core"
	"coaching-backend/internal/models"
)

// RedirectEntry is the screen users are sent to after a session failure.
const RedirectEntry = "entry"

// Alert texts shown when session initialization fails.
const (
	AlertProfileSetupTitle   = "Profile Setup Error"
	AlertProfileSetupMessage = "There was an error setting up your profile. Please try again or contact support."
	AlertAuthTitle           = "Authentication Error"
	AlertAuthMessage         = "There was a problem with the authentication process. Please try again."
	AlertResetTitle          = "Password Reset Error"
)

// Alert is a user-facing error dialog.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Snapshot is the session state at one point in time.
type Snapshot struct {
	Identity *models.Identity `json:"identity,omitempty"`
	User     *models.User     `json:"user,omitempty"`
	Goals    []models.Goal    `json:"goals"`
	Loading  bool             `json:"loading"`
	Created  bool             `json:"created,omitempty"`
	Alert    *Alert           `json:"alert,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
}

// Listener receives every new snapshot.
type Listener func(Snapshot)

// Provider owns the session state. It is safe for concurrent use; listeners
// are called synchronously, outside the lock.
type Provider struct {
	users  core.UserService
	goals  core.GoalService
	auth   core.AuthService
	logger *zap.Logger

	mu        sync.Mutex
	state     Snapshot
	listeners map[int]Listener
	nextID    int
}

// NewProvider creates a provider in the loading state with no identity.
func NewProvider(users core.UserService, goals core.GoalService, auth core.AuthService, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		users:     users,
		goals:     goals,
		auth:      auth,
		logger:    logger,
		state:     Snapshot{Loading: true, Goals: []models.Goal{}},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l and returns a function that removes it.
func (p *Provider) Subscribe(l Listener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Snapshot returns the current state.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HandleIdentityChange reacts to sign-in and sign-out. A nil identity
// clears the session. Otherwise the user record is fetched, or created with
// defaults when absent, and the user's goals are loaded. A failed default
// record write raises the profile setup alert; any other failure raises the
// authentication alert. Both redirect to the entry screen and nothing is
// retried.
func (p *Provider) HandleIdentityChange(ctx context.Context, identity *models.Identity) Snapshot {
	if identity == nil {
		return p.publish(Snapshot{Goals: []models.Goal{}})
	}

	p.publish(Snapshot{Identity: identity, Loading: true, Goals: []models.Goal{}})

	user, created, err := p.users.GetOrCreate(ctx, *identity)
	if err != nil {
		alert := &Alert{Title: AlertAuthTitle, Message: AlertAuthMessage}
		if errors.Is(err, core.ErrUserCreate) {
			alert = &Alert{Title: AlertProfileSetupTitle, Message: AlertProfileSetupMessage}
		}
		p.logger.Error("Failed to initialize user record", zap.String("userID", identity.UID), zap.Error(err))
		return p.publish(Snapshot{
			Identity: identity,
			Goals:    []models.Goal{},
			Alert:    alert,
			Redirect: RedirectEntry,
		})
	}

	goals, err := p.goals.ListGoals(ctx, identity.UID)
	if err != nil {
		p.logger.Error("Failed to load goals", zap.String("userID", identity.UID), zap.Error(err))
		return p.publish(Snapshot{
			Identity: identity,
			User:     user,
			Goals:    []models.Goal{},
			Alert:    &Alert{Title: AlertAuthTitle, Message: AlertAuthMessage},
			Redirect: RedirectEntry,
		})
	}

	return p.publish(Snapshot{Identity: identity, User: user, Goals: goals, Created: created})
}

// ResetPassword delegates to the auth backend. The returned alert carries
// the backend message unchanged; it is nil on success.
func (p *Provider) ResetPassword(ctx context.Context, email string) (*Alert, error) {
	if err := p.auth.ResetPassword(ctx, email); err != nil {
		return &Alert{Title: AlertResetTitle, Message: err.Error()}, err
	}
	return nil, nil
}

func (p *Provider) publish(s Snapshot) Snapshot {
	p.mu.Lock()
	p.state = s
	ls := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		ls = append(ls, l)
	}
	p.mu.Unlock()

	for _, l := range ls {
		l(s)
	}
	return s
}
