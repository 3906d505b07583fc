package seats

import (
	"seatwise/internal/layout"
)

// SeatResponse for API responses
type SeatResponse struct {
	ID          string           `json:"id"`
	EventID     string           `json:"event_id"`
	Position    int              `json:"position"`
	Status      string           `json:"status"`
	RequestedBy *string          `json:"requested_by,omitempty"`
	Label       layout.SeatLabel `json:"label"`
}

// ToResponse converts a Seat record to its API shape.
func (s *Seat) ToResponse() SeatResponse {
	var requestedBy *string
	if s.RequestedBy != nil {
		id := s.RequestedBy.String()
		requestedBy = &id
	}

	return SeatResponse{
		ID:          s.ID,
		EventID:     s.EventID.String(),
		Position:    s.Position,
		Status:      string(s.Status),
		RequestedBy: requestedBy,
		Label:       s.Label(),
	}
}

// SeatActionResponse reports a bulk workflow action. Matched can be smaller
// than Requested when some ids did not belong to the event; callers needing
// strict semantics compare the two.
type SeatActionResponse struct {
	Requested int            `json:"requested"`
	Matched   int            `json:"matched"`
	Seats     []SeatResponse `json:"seats"`
}

// NewSeatActionResponse builds the bulk action report.
func NewSeatActionResponse(requested int, updated []Seat) SeatActionResponse {
	responses := make([]SeatResponse, len(updated))
	for i := range updated {
		responses[i] = updated[i].ToResponse()
	}
	return SeatActionResponse{
		Requested: requested,
		Matched:   len(updated),
		Seats:     responses,
	}
}
