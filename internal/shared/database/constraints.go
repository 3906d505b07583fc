package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	// Seat listings always filter by event and order by position
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seats_event_position
		ON seats (event_id, position);
	`).Error
	if err != nil {
		return err
	}

	// Speeds up per-event status summaries
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seats_event_status
		ON seats (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
