package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SeatActivity is the message published for every seat workflow change.
// Downstream consumers (audit trail, live seat maps, admin dashboards)
// subscribe to the activity topic.
type SeatActivity struct {
	ID        uuid.UUID  `json:"id"`
	EventID   uuid.UUID  `json:"event_id"`
	Action    string     `json:"action"` // booked, approved, rejected, blocked, unblocked, reset, reconciled
	SeatIDs   []string   `json:"seat_ids,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewSeatActivity builds an activity message with a fresh id and timestamp
func NewSeatActivity(eventID uuid.UUID, action string, seatIDs []string, userID *uuid.UUID) *SeatActivity {
	return &SeatActivity{
		ID:        uuid.New(),
		EventID:   eventID,
		Action:    action,
		SeatIDs:   seatIDs,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON serializes the activity for the wire
func (a *SeatActivity) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// GetPartitionKey keys messages by event so one event's activity stays
// ordered within a partition.
func (a *SeatActivity) GetPartitionKey() string {
	return a.EventID.String()
}
