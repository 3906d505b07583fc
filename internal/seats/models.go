package seats

import (
	"time"

	"github.com/google/uuid"

	"seatwise/internal/layout"
)

// Status is the lifecycle state of a seat.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusReserved  Status = "reserved"
	StatusBlocked   Status = "blocked"
)

// IsValid checks if the seat status is one of the four lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusReserved, StatusBlocked:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Seat defines the structure for individual seats. The ID is the composite
// key derived from the event id and the four layout coordinates; it doubles
// as the primary key and the externally visible seat address.
type Seat struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	EventID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	Position     int        `gorm:"not null" json:"position"`
	Status       Status     `gorm:"type:varchar(20);not null;default:'available';check:status IN ('available', 'pending', 'reserved', 'blocked')" json:"status"`
	RequestedBy  *uuid.UUID `gorm:"type:uuid" json:"requested_by,omitempty"`
	LabelZone    string     `gorm:"not null" json:"-"`
	LabelSection string     `gorm:"not null" json:"-"`
	LabelRow     string     `gorm:"not null" json:"-"`
	LabelSeat    string     `gorm:"not null" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// Label reassembles the display coordinates of the seat.
func (s *Seat) Label() layout.SeatLabel {
	return layout.SeatLabel{
		Zone:    s.LabelZone,
		Section: s.LabelSection,
		Row:     s.LabelRow,
		Seat:    s.LabelSeat,
	}
}

// NewSeat creates an available, unowned seat for the given identity.
// Position is the seat's index in expansion order; listings sort by it so
// the stored order matches what the expander produced.
func NewSeat(eventID uuid.UUID, identity layout.SeatIdentity, position int) Seat {
	return Seat{
		ID:           identity.ID,
		EventID:      eventID,
		Position:     position,
		Status:       StatusAvailable,
		LabelZone:    identity.Label.Zone,
		LabelSection: identity.Label.Section,
		LabelRow:     identity.Label.Row,
		LabelSeat:    identity.Label.Seat,
	}
}

// OwnerRule says what a status update does to the requesting user. There is
// no implicit merge: every update names one of the three rules, so clearing
// the owner is always an explicit decision.
type OwnerRule int

const (
	// OwnerClear removes the requesting user.
	OwnerClear OwnerRule = iota
	// OwnerSet replaces the requesting user with StatusUpdate.RequestedBy.
	OwnerSet
	// OwnerKeep leaves the requesting user untouched (approve preserves the
	// booker while changing the status).
	OwnerKeep
)

// StatusUpdate is a fully specified seat update: the new status plus what
// happens to the owner. Partial-field merges are deliberately impossible.
type StatusUpdate struct {
	Status      Status
	Owner       OwnerRule
	RequestedBy *uuid.UUID
}

// Apply writes the update onto a seat record.
func (u StatusUpdate) Apply(seat *Seat) {
	seat.Status = u.Status
	switch u.Owner {
	case OwnerClear:
		seat.RequestedBy = nil
	case OwnerSet:
		seat.RequestedBy = u.RequestedBy
	case OwnerKeep:
		// owner untouched
	}
}

// Workflow transitions. The store applies these unconditionally; which
// transition a caller may request is enforced by route authorization, not
// here. This mirrors the booking workflow:
//
//	available -> pending  (book, owner = caller)
//	pending   -> reserved (approve, owner preserved)
//	pending   -> available (reject, owner cleared)
//	*         -> available (reset, owner cleared)
//	*         -> blocked / blocked -> * (admin override)

// BookUpdate marks seats pending for the requesting user.
func BookUpdate(userID uuid.UUID) StatusUpdate {
	return StatusUpdate{Status: StatusPending, Owner: OwnerSet, RequestedBy: &userID}
}

// ApproveUpdate confirms pending requests, keeping the requesting user.
func ApproveUpdate() StatusUpdate {
	return StatusUpdate{Status: StatusReserved, Owner: OwnerKeep}
}

// RejectUpdate declines pending requests and clears the requesting user.
// The clear is part of the contract: a rejected seat must not retain a
// stale owner.
func RejectUpdate() StatusUpdate {
	return StatusUpdate{Status: StatusAvailable, Owner: OwnerClear}
}

// BlockUpdate takes seats out of circulation; any owner is cleared.
func BlockUpdate() StatusUpdate {
	return StatusUpdate{Status: StatusBlocked, Owner: OwnerClear}
}

// UnblockUpdate returns blocked seats to the available pool.
func UnblockUpdate() StatusUpdate {
	return StatusUpdate{Status: StatusAvailable, Owner: OwnerClear}
}
