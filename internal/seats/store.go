package seats

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"seatwise/internal/layout"
)

// Store is durable keyed storage of seat records scoped by event.
//
// Implementations must serialize mutating operations per event id: two
// mutations for the same event never interleave, mutations for different
// events proceed independently. Reads may run concurrently but always see
// a consistent snapshot, never a half-applied mutation.
type Store interface {
	// CreateAll inserts one available, unowned seat per identity. Insert-if-
	// absent: an identity that already has a record keeps its status and
	// owner, so re-seeding never wipes live bookings.
	CreateAll(ctx context.Context, eventID uuid.UUID, identities []layout.SeatIdentity) error

	// ListByEvent returns every seat of the event in expansion order.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error)

	// GetMany returns the seats for the given ids, keyed by id. Missing ids
	// are simply absent from the map, not an error.
	GetMany(ctx context.Context, eventID uuid.UUID, ids []string) (map[string]Seat, error)

	// ApplyStatus applies the same fully specified update to every id that
	// exists for the event and returns the updated records. Ids not found
	// (or belonging to another event) are silently skipped.
	ApplyStatus(ctx context.Context, eventID uuid.UUID, ids []string, update StatusUpdate) ([]Seat, error)

	// ReplaceAll swaps the event's entire seat set for the given records in
	// one atomic step. Used by reconciliation.
	ReplaceAll(ctx context.Context, eventID uuid.UUID, seats []Seat) error

	// ResetAll unconditionally returns every seat of the event to available
	// with no requesting user.
	ResetAll(ctx context.Context, eventID uuid.UUID) ([]Seat, error)

	// DeleteAllForEvent removes the event's seats. Part of event deletion;
	// seats never outlive their event.
	DeleteAllForEvent(ctx context.Context, eventID uuid.UUID) error
}

// eventLocks hands out one RWMutex per event id so stores can scope
// exclusion to a single event. Locks are created on first use and kept for
// the life of the store; the per-event footprint is one mutex.
type eventLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.RWMutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[uuid.UUID]*sync.RWMutex)}
}

func (e *eventLocks) get(eventID uuid.UUID) *sync.RWMutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[eventID]
	if !ok {
		lock = &sync.RWMutex{}
		e.locks[eventID] = lock
	}
	return lock
}

// Lock acquires the exclusive per-event lock.
func (e *eventLocks) Lock(eventID uuid.UUID) func() {
	lock := e.get(eventID)
	lock.Lock()
	return lock.Unlock
}

// RLock acquires the shared per-event lock for reads.
func (e *eventLocks) RLock(eventID uuid.UUID) func() {
	lock := e.get(eventID)
	lock.RLock()
	return lock.RUnlock
}
