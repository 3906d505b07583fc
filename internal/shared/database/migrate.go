package database

import (
	"seatwise/internal/events"
	"seatwise/internal/seats"
	"seatwise/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&seats.Seat{},
	)
}
