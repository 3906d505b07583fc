package seats

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"seatwise/internal/layout"
)

// MemoryStore keeps seat records in process memory. It satisfies the same
// contract as the Postgres store and backs the service in tests and in
// persistence-free deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	seats map[uuid.UUID]map[string]Seat

	locks *eventLocks
}

// NewMemoryStore creates an empty in-memory seat store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seats: make(map[uuid.UUID]map[string]Seat),
		locks: newEventLocks(),
	}
}

func (m *MemoryStore) CreateAll(ctx context.Context, eventID uuid.UUID, identities []layout.SeatIdentity) error {
	unlock := m.locks.Lock(eventID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.seats[eventID]
	if !ok {
		byID = make(map[string]Seat, len(identities))
		m.seats[eventID] = byID
	}

	for i, identity := range identities {
		if _, exists := byID[identity.ID]; exists {
			// insert-if-absent: existing bookings survive re-seeding
			continue
		}
		byID[identity.ID] = NewSeat(eventID, identity, i)
	}

	return nil
}

func (m *MemoryStore) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	unlock := m.locks.RLock(eventID)
	defer unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := m.seats[eventID]
	result := make([]Seat, 0, len(byID))
	for _, seat := range byID {
		result = append(result, seat)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})

	return result, nil
}

func (m *MemoryStore) GetMany(ctx context.Context, eventID uuid.UUID, ids []string) (map[string]Seat, error) {
	unlock := m.locks.RLock(eventID)
	defer unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	byID := m.seats[eventID]
	result := make(map[string]Seat, len(ids))
	for _, id := range ids {
		if seat, ok := byID[id]; ok {
			result[id] = seat
		}
	}

	return result, nil
}

func (m *MemoryStore) ApplyStatus(ctx context.Context, eventID uuid.UUID, ids []string, update StatusUpdate) ([]Seat, error) {
	unlock := m.locks.Lock(eventID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	byID := m.seats[eventID]
	updated := make([]Seat, 0, len(ids))
	for _, id := range ids {
		seat, ok := byID[id]
		if !ok {
			// partial match is not an error: skip and move on
			continue
		}
		update.Apply(&seat)
		byID[id] = seat
		updated = append(updated, seat)
	}

	return updated, nil
}

func (m *MemoryStore) ReplaceAll(ctx context.Context, eventID uuid.UUID, seats []Seat) error {
	unlock := m.locks.Lock(eventID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[string]Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}
	m.seats[eventID] = byID

	return nil
}

func (m *MemoryStore) ResetAll(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	unlock := m.locks.Lock(eventID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	byID := m.seats[eventID]
	reset := make([]Seat, 0, len(byID))
	for id, seat := range byID {
		seat.Status = StatusAvailable
		seat.RequestedBy = nil
		byID[id] = seat
		reset = append(reset, seat)
	}
	sort.Slice(reset, func(i, j int) bool {
		return reset[i].Position < reset[j].Position
	})

	return reset, nil
}

func (m *MemoryStore) DeleteAllForEvent(ctx context.Context, eventID uuid.UUID) error {
	unlock := m.locks.Lock(eventID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.seats, eventID)
	return nil
}
