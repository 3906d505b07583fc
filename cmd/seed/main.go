package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seatwise/internal/events"
	"seatwise/internal/layout"
	"seatwise/internal/seats"
	"seatwise/internal/shared/config"
	"seatwise/internal/shared/database"
	"seatwise/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db          *database.DB
	seatService seats.Service
}

func main() {
	fmt.Println("🌱 Starting Seatwise Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:          db,
		seatService: seats.NewService(seats.NewRepository(db.GetPostgreSQL())),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seats",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedDemoEvent(ctx, userIDs["admin"]); err != nil {
		return fmt.Errorf("failed to seed demo event: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 3 users: 1 admin and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"admin", "Admin", "User", "admin@seatwise.dev", users.RoleAdmin},
		{"user1", "Ava", "Reyes", "ava@seatwise.dev", users.RoleUser},
		{"user2", "Noah", "Patel", "noah@seatwise.dev", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			FirstName: userData.firstName,
			LastName:  userData.lastName,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedDemoEvent creates the demo event and expands its seat set
func (s *Seeder) SeedDemoEvent(ctx context.Context, adminID uuid.UUID) error {
	fmt.Println("  🎫 Seeding demo event...")

	configuration := layout.EventConfiguration{
		Zones: []layout.ZoneConfig{
			{
				Name: "Front",
				Sections: []layout.SectionConfig{
					{
						Name: "Left",
						Rows: []layout.RowConfig{
							{Label: "A", SeatCount: 5},
							{Label: "B", SeatCount: 6},
						},
					},
					{
						Name: "Center",
						Rows: []layout.RowConfig{
							{Label: "A", SeatCount: 10},
							{Label: "B", SeatCount: 12},
						},
					},
					{
						Name: "Right",
						Rows: []layout.RowConfig{
							{Label: "A", SeatCount: 5},
							{Label: "B", SeatCount: 6},
						},
					},
				},
			},
			{
				Name: "Back",
				Sections: []layout.SectionConfig{
					{
						Name: "General",
						Rows: []layout.RowConfig{
							{Label: "AA", SeatCount: 20, Aisles: []int{10}},
							{Label: "BB", SeatCount: 20, Aisles: []int{10}},
						},
					},
				},
			},
		},
	}

	if err := configuration.Validate(); err != nil {
		return fmt.Errorf("invalid demo configuration: %w", err)
	}

	event := events.Event{
		ID:            uuid.New(),
		Name:          "Grand Opening Concert",
		Description:   "Launch night with full seating across both zones",
		Venue:         "Main Hall",
		DateTime:      time.Now().AddDate(0, 3, 0),
		Configuration: events.Configuration(configuration),
		CreatedBy:     adminID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to create event %s: %w", event.Name, err)
	}

	if err := s.seatService.Seed(ctx, event.ID, configuration); err != nil {
		return fmt.Errorf("failed to seed seats for %s: %w", event.Name, err)
	}

	fmt.Printf("    ✅ Created event: %s (%d seats)\n", event.Name, configuration.TotalSeats())
	return nil
}
