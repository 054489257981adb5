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

var ErrEmptyJournalEntry = errors.New("journal entry cannot be empty")

type journalService struct {
	journalRepo db.JournalRepository
	now         Clock
	ids         timestampIDs
}

// NewJournalService creates a JournalService. A nil clock means time.Now.
func NewJournalService(journalRepo db.JournalRepository, now Clock) JournalService {
	if now == nil {
		now = time.Now
	}
	return &journalService{journalRepo: journalRepo, now: now}
}

func (s *journalService) ListEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	entries, err := s.journalRepo.Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries for user '%s': %w", userID, err)
	}
	return entries, nil
}

// AddEntry prepends a new entry and writes the whole array back. An entry
// without a goal is tagged with models.NoGoalID.
func (s *journalService) AddEntry(ctx context.Context, userID string, req models.CreateJournalEntryRequest) (*models.JournalEntry, error) {
	text := strings.TrimSpace(req.Entry)
	if text == "" {
		return nil, ErrEmptyJournalEntry
	}
	entries, err := s.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		taken[e.ID] = struct{}{}
	}
	goalID := strings.TrimSpace(req.GoalID)
	if goalID == "" {
		goalID = models.NoGoalID
	}

	now := s.now().UTC()
	entry := models.JournalEntry{
		ID:        s.ids.next(now, taken),
		UserID:    userID,
		Entry:     text,
		Timestamp: now.Format(time.RFC3339Nano),
		GoalID:    goalID,
	}

	updated := make([]models.JournalEntry, 0, len(entries)+1)
	updated = append(updated, entry)
	updated = append(updated, entries...)
	if err := s.journalRepo.Save(ctx, userID, updated); err != nil {
		return nil, fmt.Errorf("failed to save journal entries for user '%s': %w", userID, err)
	}
	return &entry, nil
}
