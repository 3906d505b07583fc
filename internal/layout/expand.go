package layout

import (
	"fmt"

	"github.com/google/uuid"
)

// SeatLabel carries the human-readable coordinates of a seat, redundant
// with the key but kept for display without parsing it back apart.
type SeatLabel struct {
	Zone    string `json:"zone"`
	Section string `json:"section"`
	Row     string `json:"row"`
	Seat    string `json:"seat"`
}

// SeatIdentity is one addressable seat produced by expanding a configuration.
type SeatIdentity struct {
	ID    string
	Label SeatLabel
}

// SeatKey builds the composite seat identifier. The format is a persisted,
// externally visible contract: {eventId}-{zone}-{section}-{row}-{seatNumber}.
// A seat keeps its identity across layout edits iff all five components are
// unchanged.
func SeatKey(eventID uuid.UUID, zone, section, row string, seatNumber int) string {
	return fmt.Sprintf("%s%s%s%s%s%s%s%s%d",
		eventID.String(), Separator, zone, Separator, section, Separator, row, Separator, seatNumber)
}

// Expand turns a configuration into the ordered set of seat identities for
// an event: zones, sections and rows in declaration order, seat numbers
// counting up from 1. The output is deterministic, which is what makes
// reconciliation after a layout edit possible.
//
// An invalid configuration reaching Expand is a programming error upstream;
// it is rejected here rather than silently coerced.
func Expand(eventID uuid.UUID, cfg EventConfiguration) ([]SeatIdentity, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	identities := make([]SeatIdentity, 0, cfg.TotalSeats())
	for _, zone := range cfg.Zones {
		for _, section := range zone.Sections {
			for _, row := range section.Rows {
				for num := 1; num <= row.SeatCount; num++ {
					identities = append(identities, SeatIdentity{
						ID: SeatKey(eventID, zone.Name, section.Name, row.Label, num),
						Label: SeatLabel{
							Zone:    zone.Name,
							Section: section.Name,
							Row:     row.Label,
							Seat:    fmt.Sprintf("%d", num),
						},
					})
				}
			}
		}
	}

	return identities, nil
}
