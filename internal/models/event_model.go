package models

import "time"

// RSVPStatus is a user's attendance response to an event.
type RSVPStatus string

const (
	RSVPYes        RSVPStatus = "yes"
	RSVPNo         RSVPStatus = "no"
	RSVPInterested RSVPStatus = "interested"
)

// Valid reports whether s is one of the three accepted responses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPYes, RSVPNo, RSVPInterested:
		return true
	}
	return false
}

// Event is a shared document in the events collection. Attendees maps a
// user id to that user's RSVP status.
type Event struct {
	ID          string                `json:"id" firestore:"-"`
	Title       string                `json:"title" firestore:"title"`
	Description string                `json:"description" firestore:"description"`
	StartDate   time.Time             `json:"startDate" firestore:"startDate"`
	EndDate     time.Time             `json:"endDate" firestore:"endDate"`
	Location    string                `json:"location" firestore:"location"`
	Capacity    int                   `json:"capacity" firestore:"capacity"`
	Attendees   map[string]RSVPStatus `json:"attendees,omitempty" firestore:"attendees"`
}

// RSVPFor returns the stored status for userID, or "" when the user never responded.
func (e *Event) RSVPFor(userID string) RSVPStatus {
	if e.Attendees == nil {
		return ""
	}
	return e.Attendees[userID]
}

// AttendeeCount is the number of users whose status is "yes".
func (e *Event) AttendeeCount() int {
	n := 0
	for _, s := range e.Attendees {
		if s == RSVPYes {
			n++
		}
	}
	return n
}

// ToFirestore encodes the event document. Attendees are written as a nested
// map so single keys can be merge-written later.
func (e *Event) ToFirestore() map[string]interface{} {
	attendees := make(map[string]interface{}, len(e.Attendees))
	for uid, s := range e.Attendees {
		attendees[uid] = string(s)
	}
	return map[string]interface{}{
		"title":       e.Title,
		"description": e.Description,
		"startDate":   e.StartDate,
		"endDate":     e.EndDate,
		"location":    e.Location,
		"capacity":    e.Capacity,
		"attendees":   attendees,
	}
}
