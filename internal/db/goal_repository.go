package db

import "coaching-backend/internal/models"

// NewGoalRepository binds the goals/{uid}.goals array.
func NewGoalRepository(store DocumentStore) GoalRepository {
	return NewListAccessor[models.Goal](store, GoalsCollection, "goals")
}

// NewJournalRepository binds the journal_entries/{uid}.entries array.
func NewJournalRepository(store DocumentStore) JournalRepository {
	return NewListAccessor[models.JournalEntry](store, JournalEntriesCollection, "entries")
}
