package models

// NoGoalID is stored as the goalId of entries written without a goal.
const NoGoalID = "No goal"

// JournalEntry is one element of journal_entries/{uid}.entries, newest first.
type JournalEntry struct {
	ID        string `json:"id" firestore:"id"`
	UserID    string `json:"userId" firestore:"userId"`
	Entry     string `json:"entry" firestore:"entry"`
	Timestamp string `json:"timestamp" firestore:"timestamp"` // ISO-8601
	GoalID    string `json:"goalId,omitempty" firestore:"goalId,omitempty"`
}

// ToFirestore encodes the entry as an array element.
func (e JournalEntry) ToFirestore() map[string]interface{} {
	data := map[string]interface{}{
		"id":        e.ID,
		"userId":    e.UserID,
		"entry":     e.Entry,
		"timestamp": e.Timestamp,
	}
	if e.GoalID != "" {
		data["goalId"] = e.GoalID
	}
	return data
}
