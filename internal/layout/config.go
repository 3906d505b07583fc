package layout

import (
	"fmt"
	"strings"
)

// Separator joins the five components of a seat key. Names that contain it
// would break addressing, so validation rejects them at the boundary.
const Separator = "-"

// RowConfig describes one row of seats inside a section.
type RowConfig struct {
	Label     string `json:"label" binding:"required"`
	SeatCount int    `json:"seat_count" binding:"required,min=1"`
	// Aisles holds 1-based seat indices after which a visual gap occurs.
	// Presentation-only: aisles never change seat identity or count.
	Aisles []int `json:"aisles,omitempty"`
}

// SectionConfig groups rows under a named section (e.g. "Left", "Center").
type SectionConfig struct {
	Name string      `json:"name" binding:"required"`
	Rows []RowConfig `json:"rows" binding:"required,min=1,dive"`
}

// ZoneConfig is the outermost layout level (e.g. "Front", "Back").
type ZoneConfig struct {
	Name     string          `json:"name" binding:"required"`
	Sections []SectionConfig `json:"sections" binding:"required,min=1,dive"`
}

// EventConfiguration is the declarative seating layout for one event:
// zones contain sections, sections contain rows.
type EventConfiguration struct {
	Zones []ZoneConfig `json:"zones" binding:"required,min=1,dive"`
}

// TotalSeats returns the number of seats the configuration expands to.
func (c EventConfiguration) TotalSeats() int {
	total := 0
	for _, zone := range c.Zones {
		for _, section := range zone.Sections {
			for _, row := range section.Rows {
				total += row.SeatCount
			}
		}
	}
	return total
}

// Validate checks the structural invariants of the configuration:
// non-empty names without the key separator, positive seat counts, and
// aisle positions within [1, seatCount-1].
func (c EventConfiguration) Validate() error {
	if len(c.Zones) == 0 {
		return fmt.Errorf("configuration must have at least one zone")
	}

	for _, zone := range c.Zones {
		if err := validateName("zone", zone.Name); err != nil {
			return err
		}
		if len(zone.Sections) == 0 {
			return fmt.Errorf("zone %q must have at least one section", zone.Name)
		}
		for _, section := range zone.Sections {
			if err := validateName("section", section.Name); err != nil {
				return err
			}
			if len(section.Rows) == 0 {
				return fmt.Errorf("section %q must have at least one row", section.Name)
			}
			for _, row := range section.Rows {
				if err := validateName("row label", row.Label); err != nil {
					return err
				}
				if row.SeatCount < 1 {
					return fmt.Errorf("row %q: seat count must be at least 1, got %d", row.Label, row.SeatCount)
				}
				for _, aisle := range row.Aisles {
					if aisle < 1 || aisle > row.SeatCount-1 {
						return fmt.Errorf("row %q: aisle position %d out of range [1, %d]", row.Label, aisle, row.SeatCount-1)
					}
				}
			}
		}
	}

	return nil
}

func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%s name %q must not contain %q", kind, name, Separator)
	}
	return nil
}
