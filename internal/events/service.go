package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seatwise/internal/layout"
	"seatwise/internal/seats"
	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"
)

var ErrEventNotFound = errors.New("event not found")

// SeatService is the slice of the seats module the events service drives.
// Declared here so wiring stays setter-injected like the other services.
type SeatService interface {
	Seed(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error
	Reconcile(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error
	DeleteForEvent(ctx context.Context, eventID uuid.UUID) error
	CountsByStatus(ctx context.Context, eventID uuid.UUID) (map[seats.Status]int, error)
}

type Service interface {
	// Service dependency injection
	SetSeatService(seatService SeatService)
	SetCacheService(cacheService cache.Service)

	CreateEvent(ctx context.Context, userID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, userID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// EventExists lets other modules verify an event without a full fetch
	EventExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo         Repository
	seatService  SeatService
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) SetSeatService(seatService SeatService) {
	s.seatService = seatService
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// Cache helper methods
func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil // Skip caching if cache service is not available
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateEventCache(ctx context.Context, eventID *uuid.UUID) error {
	if s.cacheService == nil {
		return nil
	}

	// The events pattern covers both listings and detail keys
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL); err != nil {
		return err
	}

	if eventID != nil {
		if err := s.cacheService.Delete(ctx, constants.BuildEventSeatsKey(eventID.String())); err != nil {
			return err
		}
	}

	return nil
}

// populateSeatCounts fills the per-status seat summary on a response.
func (s *service) populateSeatCounts(ctx context.Context, response *EventResponse) error {
	if s.seatService == nil {
		return nil
	}

	eventID, err := uuid.Parse(response.ID)
	if err != nil {
		return err
	}

	counts, err := s.seatService.CountsByStatus(ctx, eventID)
	if err != nil {
		return err
	}

	summary := make(map[string]int, len(counts))
	for status, n := range counts {
		summary[string(status)] = n
	}
	response.SeatCounts = summary
	return nil
}

func (s *service) CreateEvent(ctx context.Context, userID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	// Validate date is in the future
	if req.DateTime.Before(time.Now()) {
		return nil, errors.New("event date must be in the future")
	}

	// VALIDATE CONFIGURATION FIRST - before creating event
	if err := req.Configuration.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seating configuration: %w", err)
	}

	event := &Event{
		Name:          req.Name,
		Description:   req.Description,
		Venue:         req.Venue,
		DateTime:      req.DateTime,
		Configuration: Configuration(req.Configuration),
		CreatedBy:     userID,
	}

	if err := s.repo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// Seed the seat set from the configuration
	if s.seatService != nil {
		if err := s.seatService.Seed(ctx, event.ID, req.Configuration); err != nil {
			s.repo.Delete(event.ID) // Best effort cleanup
			return nil, fmt.Errorf("failed to seed seats: %w", err)
		}
	}

	logger.GetDefault().LogEventCreated(ctx, event.ID.String(), req.Configuration.TotalSeats())

	response := event.ToResponse()

	if err := s.populateSeatCounts(ctx, &response); err != nil {
		return nil, fmt.Errorf("failed to populate seat counts: %w", err)
	}

	if err := s.invalidateEventCache(ctx, nil); err != nil {
		logger.GetDefault().Debug("failed to invalidate event cache after creation", slog.Any("error", err))
	}

	return &response, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	// Try to get from cache first
	var cachedEvent EventResponse
	if err := s.getCache(ctx, cacheKey, &cachedEvent); err == nil {
		return &cachedEvent, nil
	}

	// Cache miss - get from database
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	response := event.ToResponse()

	if err := s.populateSeatCounts(ctx, &response); err != nil {
		return nil, fmt.Errorf("failed to populate seat counts: %w", err)
	}

	if err := s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL); err != nil {
		logger.GetDefault().Debug("failed to cache event detail", slog.Any("error", err))
	}

	return &response, nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	// Only unfiltered listings are cached; filters fan out too many keys
	cacheable := query.Search == "" && query.Venue == ""
	cacheKey := constants.BuildEventListKey(query.Page, query.Limit)

	if cacheable {
		var cached PaginatedEvents
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	events, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
		if err := s.populateSeatCounts(ctx, &responses[i]); err != nil {
			return nil, fmt.Errorf("failed to populate seat counts: %w", err)
		}
	}

	result := &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}

	if cacheable {
		if err := s.setCache(ctx, cacheKey, result, constants.TTL_EVENT_LIST); err != nil {
			logger.GetDefault().Debug("failed to cache event list", slog.Any("error", err))
		}
	}

	return result, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, userID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	// Get current event
	currentEvent, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	// Build updates map
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.DateTime != nil {
		if req.DateTime.Before(time.Now()) {
			return nil, errors.New("event date must be in the future")
		}
		updates["date_time"] = *req.DateTime
	}

	configChanged := false
	if req.Configuration != nil {
		if err := req.Configuration.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seating configuration: %w", err)
		}
		updates["configuration"] = Configuration(*req.Configuration)
		configChanged = true
	}

	if len(updates) == 0 {
		return nil, errors.New("no fields to update")
	}

	updates["updated_by"] = userID
	updates["updated_at"] = time.Now()

	updatedEvent, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	// A changed layout reshapes the seat set. Seats whose identity survives
	// keep their booking state; the rest are rebuilt fresh.
	if configChanged && s.seatService != nil {
		if err := s.seatService.Reconcile(ctx, id, *req.Configuration); err != nil {
			// Roll every written column back so a failed update leaves no
			// partial effect and the stored layout and seat set cannot
			// disagree.
			if _, rbErr := s.repo.Update(id, rollbackUpdates(currentEvent, updates)); rbErr != nil {
				logger.GetDefault().ErrorWithContext(ctx, "failed to roll back configuration", rbErr,
					map[string]interface{}{"event_id": id.String()})
			}
			return nil, fmt.Errorf("failed to reconcile seats: %w", err)
		}
	}

	response := updatedEvent.ToResponse()

	if err := s.populateSeatCounts(ctx, &response); err != nil {
		return nil, fmt.Errorf("failed to populate seat counts: %w", err)
	}

	if err := s.invalidateEventCache(ctx, &id); err != nil {
		logger.GetDefault().Debug("failed to invalidate event cache after update", slog.Any("error", err))
	}

	return &response, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	// Seats go first so a crash cannot leave orphans behind a deleted event
	if s.seatService != nil {
		if err := s.seatService.DeleteForEvent(ctx, id); err != nil {
			return fmt.Errorf("failed to delete seats: %w", err)
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if err := s.invalidateEventCache(ctx, &id); err != nil {
		logger.GetDefault().Debug("failed to invalidate event cache after deletion", slog.Any("error", err))
	}

	return nil
}

// rollbackUpdates builds the inverse of an updates map from the event state
// read before the update was applied.
func rollbackUpdates(before *Event, updates map[string]interface{}) map[string]interface{} {
	rollback := make(map[string]interface{}, len(updates))
	for column := range updates {
		switch column {
		case "name":
			rollback[column] = before.Name
		case "description":
			rollback[column] = before.Description
		case "venue":
			rollback[column] = before.Venue
		case "date_time":
			rollback[column] = before.DateTime
		case "configuration":
			rollback[column] = before.Configuration
		case "updated_by":
			rollback[column] = before.UpdatedBy
		case "updated_at":
			rollback[column] = before.UpdatedAt
		}
	}
	return rollback
}

func (s *service) EventExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.repo.Exists(id)
	if err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}
	return exists, nil
}
