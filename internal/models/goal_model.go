package models

import (
	"strings"
	"time"
)

// GoalType classifies the horizon of a goal.
type GoalType string

const (
	GoalShortTerm GoalType = "short-term"
	GoalLongTerm  GoalType = "long-term"
)

// Goal is one entry of the goals array stored at goals/{uid}.
// Goals are not individually addressable in the store.
type Goal struct {
	ID          string   `json:"id" firestore:"id"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Deadline    string   `json:"deadline" firestore:"deadline"` // ISO-8601
	Service     string   `json:"service" firestore:"service"`
	Type        GoalType `json:"type" firestore:"type"`
	Completed   bool     `json:"completed" firestore:"completed"`
}

// DeadlineTime parses Deadline. Both full RFC 3339 timestamps and plain
// dates are accepted.
func (g Goal) DeadlineTime() (time.Time, bool) {
	d := strings.TrimSpace(g.Deadline)
	if d == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, d); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsExpired reports whether the deadline lies before now. It is derived at
// read time and never persisted. A goal without a parseable deadline never expires.
func (g Goal) IsExpired(now time.Time) bool {
	t, ok := g.DeadlineTime()
	if !ok {
		return false
	}
	return t.Before(now)
}

// ToFirestore encodes the goal as an array element.
func (g Goal) ToFirestore() map[string]interface{} {
	return map[string]interface{}{
		"id":          g.ID,
		"title":       g.Title,
		"description": g.Description,
		"deadline":    g.Deadline,
		"service":     g.Service,
		"type":        string(g.Type),
		"completed":   g.Completed,
	}
}
