package events

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seatwise/internal/layout"
)

// Configuration is the event's seating layout persisted as a jsonb column.
type Configuration layout.EventConfiguration

func (c Configuration) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Configuration) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into Configuration", value)
	}
}

// Layout returns the configuration as the layout package's type.
func (c Configuration) Layout() layout.EventConfiguration {
	return layout.EventConfiguration(c)
}

type Event struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string        `json:"name" gorm:"not null;size:255"`
	Description   string        `json:"description" gorm:"type:text"`
	Venue         string        `json:"venue" gorm:"not null;size:255"`
	DateTime      time.Time     `json:"date_time" gorm:"not null"`
	Configuration Configuration `json:"configuration" gorm:"type:jsonb;not null"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	Venue         string                    `json:"venue"`
	DateTime      time.Time                 `json:"date_time"`
	Configuration layout.EventConfiguration `json:"configuration"`
	TotalSeats    int                       `json:"total_seats"`
	SeatCounts    map[string]int            `json:"seat_counts"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

type CreateEventRequest struct {
	Name          string                    `json:"name" binding:"required,min=3,max=255"`
	Description   string                    `json:"description" binding:"max=2000"`
	Venue         string                    `json:"venue" binding:"required,min=3,max=255"`
	DateTime      time.Time                 `json:"date_time" binding:"required"`
	Configuration layout.EventConfiguration `json:"configuration" binding:"required"`
}

type UpdateEventRequest struct {
	Name          *string                    `json:"name" binding:"omitempty,min=3,max=255"`
	Description   *string                    `json:"description" binding:"omitempty,max=2000"`
	Venue         *string                    `json:"venue" binding:"omitempty,min=3,max=255"`
	DateTime      *time.Time                 `json:"date_time"`
	Configuration *layout.EventConfiguration `json:"configuration"`
}

type EventListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Venue  string `form:"venue"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Helper method to convert Event to EventResponse
// Note: SeatCounts is populated separately by the service layer
func (e *Event) ToResponse() EventResponse {
	cfg := e.Configuration.Layout()

	return EventResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Description:   e.Description,
		Venue:         e.Venue,
		DateTime:      e.DateTime,
		Configuration: cfg,
		TotalSeats:    cfg.TotalSeats(),
		SeatCounts:    map[string]int{},
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
