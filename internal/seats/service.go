package seats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"seatwise/internal/layout"
	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
	"seatwise/pkg/logger"
)

// ActivityPublisher receives seat workflow activity for downstream consumers
// (implemented by the Kafka producer in internal/notifications).
type ActivityPublisher interface {
	PublishSeatActivity(ctx context.Context, eventID uuid.UUID, action string, seatIDs []string, userID *uuid.UUID) error
}

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)
	SetActivityPublisher(publisher ActivityPublisher)

	// Lifecycle (driven by the events module)
	Seed(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error
	Reconcile(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error
	DeleteForEvent(ctx context.Context, eventID uuid.UUID) error

	// Queries
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error)
	CountsByStatus(ctx context.Context, eventID uuid.UUID) (map[Status]int, error)

	// Booking workflow
	Book(ctx context.Context, eventID uuid.UUID, seatIDs []string, userID uuid.UUID) ([]Seat, error)
	Approve(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error)
	Reject(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error)
	Block(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error)
	Unblock(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error)
	Reset(ctx context.Context, eventID uuid.UUID) ([]Seat, error)
}

type service struct {
	store Store
	// locks serializes compound mutations (reconcile = read + replace) per
	// event, so a bulk status update can never land between the read and
	// the write of a reconciliation.
	locks        *eventLocks
	cacheService cache.Service
	activity     ActivityPublisher
}

// NewService creates the seat service on top of a Store.
func NewService(store Store) Service {
	return &service{
		store: store,
		locks: newEventLocks(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetActivityPublisher injects the seat activity publisher dependency
func (s *service) SetActivityPublisher(publisher ActivityPublisher) {
	s.activity = publisher
}

//  LIFECYCLE

func (s *service) Seed(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error {
	unlock := s.locks.Lock(eventID)
	defer unlock()

	identities, err := layout.Expand(eventID, cfg)
	if err != nil {
		return fmt.Errorf("failed to expand layout: %w", err)
	}

	if err := s.store.CreateAll(ctx, eventID, identities); err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}

	s.invalidateSeatCache(ctx, eventID)
	return nil
}

// Reconcile recomputes the event's seat set for an edited layout. Seats
// whose identity survives the edit keep their status and requesting user;
// identities no longer produced by the configuration are dropped together
// with their bookings. Callers are expected to surface that data-loss
// policy to admins before applying a layout edit.
func (s *service) Reconcile(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error {
	unlock := s.locks.Lock(eventID)
	defer unlock()

	identities, err := layout.Expand(eventID, cfg)
	if err != nil {
		return fmt.Errorf("failed to expand layout: %w", err)
	}

	existing, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load current seats: %w", err)
	}
	oldSeats := make(map[string]Seat, len(existing))
	for _, seat := range existing {
		oldSeats[seat.ID] = seat
	}

	next := make([]Seat, len(identities))
	carried := 0
	for i, identity := range identities {
		seat := NewSeat(eventID, identity, i)
		if old, ok := oldSeats[identity.ID]; ok {
			seat.Status = old.Status
			seat.RequestedBy = old.RequestedBy
			seat.CreatedAt = old.CreatedAt
			carried++
		}
		next[i] = seat
	}

	if err := s.store.ReplaceAll(ctx, eventID, next); err != nil {
		return fmt.Errorf("failed to replace seats: %w", err)
	}

	logger.GetDefault().Info("Seat set reconciled",
		slog.String("event_id", eventID.String()),
		slog.Int("seats", len(next)),
		slog.Int("carried_forward", carried),
		slog.Int("dropped", len(oldSeats)-carried),
	)

	s.invalidateSeatCache(ctx, eventID)
	s.publishActivity(ctx, eventID, "reconciled", nil, nil)
	return nil
}

func (s *service) DeleteForEvent(ctx context.Context, eventID uuid.UUID) error {
	unlock := s.locks.Lock(eventID)
	defer unlock()

	if err := s.store.DeleteAllForEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete seats: %w", err)
	}

	s.invalidateSeatCache(ctx, eventID)
	return nil
}

//  QUERIES

func (s *service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	cacheKey := constants.BuildEventSeatsKey(eventID.String())
	if s.cacheService != nil {
		var cached []Seat
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			logger.GetDefault().Debug("cache hit for seat list", slog.String("key", cacheKey))
			return cached, nil
		}
	}

	result, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_EVENT_SEATS); err != nil {
			logger.GetDefault().Debug("failed to cache seat list", slog.Any("error", err))
		}
	}

	return result, nil
}

func (s *service) CountsByStatus(ctx context.Context, eventID uuid.UUID) (map[Status]int, error) {
	all, err := s.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int, 4)
	for _, seat := range all {
		counts[seat.Status]++
	}
	return counts, nil
}

//  BOOKING WORKFLOW

func (s *service) Book(ctx context.Context, eventID uuid.UUID, seatIDs []string, userID uuid.UUID) ([]Seat, error) {
	return s.apply(ctx, eventID, seatIDs, BookUpdate(userID), "booked", &userID)
}

func (s *service) Approve(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error) {
	return s.apply(ctx, eventID, seatIDs, ApproveUpdate(), "approved", nil)
}

func (s *service) Reject(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error) {
	return s.apply(ctx, eventID, seatIDs, RejectUpdate(), "rejected", nil)
}

func (s *service) Block(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error) {
	return s.apply(ctx, eventID, seatIDs, BlockUpdate(), "blocked", nil)
}

func (s *service) Unblock(ctx context.Context, eventID uuid.UUID, seatIDs []string) ([]Seat, error) {
	return s.apply(ctx, eventID, seatIDs, UnblockUpdate(), "unblocked", nil)
}

func (s *service) Reset(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	unlock := s.locks.Lock(eventID)
	defer unlock()

	reset, err := s.store.ResetAll(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset seats: %w", err)
	}

	s.invalidateSeatCache(ctx, eventID)
	s.publishActivity(ctx, eventID, "reset", nil, nil)
	return reset, nil
}

// apply runs one bulk status transition. Ids that do not exist for the
// event are skipped, not errors; callers that need strict semantics compare
// the returned count against the request.
func (s *service) apply(ctx context.Context, eventID uuid.UUID, seatIDs []string, update StatusUpdate, action string, userID *uuid.UUID) ([]Seat, error) {
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("no seats specified")
	}

	unlock := s.locks.Lock(eventID)
	defer unlock()

	updated, err := s.store.ApplyStatus(ctx, eventID, seatIDs, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update seats: %w", err)
	}

	s.invalidateSeatCache(ctx, eventID)
	if len(updated) > 0 {
		if userID != nil {
			logger.GetDefault().LogSeatsRequested(ctx, eventID.String(), userID.String(), len(updated))
		} else {
			logger.GetDefault().LogSeatStatusChanged(ctx, eventID.String(), action, len(updated))
		}

		ids := make([]string, len(updated))
		for i, seat := range updated {
			ids[i] = seat.ID
		}
		s.publishActivity(ctx, eventID, action, ids, userID)
	}

	return updated, nil
}

//  HELPERS

func (s *service) invalidateSeatCache(ctx context.Context, eventID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildEventSeatsKey(eventID.String())); err != nil {
		logger.GetDefault().Debug("failed to invalidate seat cache", slog.Any("error", err))
	}
	// Event responses embed seat counts, so every cached event view (detail
	// and listings) goes stale too
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL); err != nil {
		logger.GetDefault().Debug("failed to invalidate event caches", slog.Any("error", err))
	}
}

func (s *service) publishActivity(ctx context.Context, eventID uuid.UUID, action string, seatIDs []string, userID *uuid.UUID) {
	if s.activity == nil {
		return
	}
	if err := s.activity.PublishSeatActivity(ctx, eventID, action, seatIDs, userID); err != nil {
		logger.GetDefault().Debug("failed to publish seat activity", slog.Any("error", err))
	}
}
