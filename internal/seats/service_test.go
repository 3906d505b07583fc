package seats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"seatwise/internal/layout"
	"seatwise/internal/shared/constants"
	"seatwise/pkg/cache"
)

type fakePublisher struct {
	actions []string
}

func (f *fakePublisher) PublishSeatActivity(ctx context.Context, eventID uuid.UUID, action string, seatIDs []string, userID *uuid.UUID) error {
	f.actions = append(f.actions, action)
	return nil
}

type fakeCache struct {
	deleted         []string
	deletedPatterns []string
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	f.deletedPatterns = append(f.deletedPatterns, pattern)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) bool { return false }

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func smallConfig() layout.EventConfiguration {
	return layout.EventConfiguration{
		Zones: []layout.ZoneConfig{
			{Name: "Front", Sections: []layout.SectionConfig{
				{Name: "Center", Rows: []layout.RowConfig{
					{Label: "A", SeatCount: 3},
					{Label: "B", SeatCount: 2},
				}},
			}},
		},
	}
}

func TestService_Seed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	svc := NewService(NewMemoryStore())

	cfg := smallConfig()
	if err := svc.Seed(ctx, eventID, cfg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	seats, err := svc.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seats) != cfg.TotalSeats() {
		t.Fatalf("expected %d seats, got %d", cfg.TotalSeats(), len(seats))
	}

	t.Run("is idempotent", func(t *testing.T) {
		userID := uuid.New()
		if _, err := svc.Book(ctx, eventID, []string{seats[0].ID}, userID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := svc.Seed(ctx, eventID, cfg); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		after, err := svc.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(after) != cfg.TotalSeats() {
			t.Fatalf("expected %d seats after re-seed, got %d", cfg.TotalSeats(), len(after))
		}
		if after[0].Status != StatusPending {
			t.Fatalf("expected booking to survive re-seed, got %s", after[0].Status)
		}
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		bad := smallConfig()
		bad.Zones[0].Name = "Front-Stage"
		if err := svc.Seed(ctx, uuid.New(), bad); err == nil {
			t.Fatal("expected error for invalid configuration")
		}
	})
}

func TestService_Workflow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	publisher := &fakePublisher{}
	svc := NewService(NewMemoryStore())
	svc.SetActivityPublisher(publisher)

	if err := svc.Seed(ctx, eventID, smallConfig()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	seats, err := svc.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	userID := uuid.New()
	ids := []string{seats[0].ID, seats[1].ID}

	t.Run("book marks seats pending for the user", func(t *testing.T) {
		updated, err := svc.Book(ctx, eventID, ids, userID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(updated) != 2 {
			t.Fatalf("expected 2 updated seats, got %d", len(updated))
		}
		for _, seat := range updated {
			if seat.Status != StatusPending {
				t.Fatalf("expected pending, got %s", seat.Status)
			}
			if seat.RequestedBy == nil || *seat.RequestedBy != userID {
				t.Fatalf("expected requesting user %s, got %v", userID, seat.RequestedBy)
			}
		}
	})

	t.Run("approve keeps the requesting user", func(t *testing.T) {
		updated, err := svc.Approve(ctx, eventID, ids[:1])
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Status != StatusReserved {
			t.Fatalf("expected reserved, got %s", updated[0].Status)
		}
		if updated[0].RequestedBy == nil || *updated[0].RequestedBy != userID {
			t.Fatalf("expected requesting user preserved, got %v", updated[0].RequestedBy)
		}
	})

	t.Run("reject clears the requesting user", func(t *testing.T) {
		updated, err := svc.Reject(ctx, eventID, ids[1:])
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Status != StatusAvailable {
			t.Fatalf("expected available, got %s", updated[0].Status)
		}
		if updated[0].RequestedBy != nil {
			t.Fatalf("expected no requesting user, got %v", updated[0].RequestedBy)
		}
	})

	t.Run("block and unblock", func(t *testing.T) {
		updated, err := svc.Block(ctx, eventID, []string{seats[2].ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Status != StatusBlocked {
			t.Fatalf("expected blocked, got %s", updated[0].Status)
		}

		updated, err = svc.Unblock(ctx, eventID, []string{seats[2].ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Status != StatusAvailable {
			t.Fatalf("expected available, got %s", updated[0].Status)
		}
	})

	t.Run("empty id list is an error", func(t *testing.T) {
		if _, err := svc.Book(ctx, eventID, nil, userID); err == nil {
			t.Fatal("expected error for empty seat list")
		}
	})

	t.Run("reset returns every seat to available", func(t *testing.T) {
		reset, err := svc.Reset(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, seat := range reset {
			if seat.Status != StatusAvailable || seat.RequestedBy != nil {
				t.Fatalf("seat %s: expected available and unowned, got %s %v", seat.ID, seat.Status, seat.RequestedBy)
			}
		}
	})

	if len(publisher.actions) == 0 {
		t.Fatal("expected workflow activity to be published")
	}
}

func TestService_InvalidatesEventCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	cacheService := &fakeCache{}
	svc := NewService(NewMemoryStore())
	svc.SetCacheService(cacheService)

	if err := svc.Seed(ctx, eventID, smallConfig()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	seats, err := svc.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cacheService.deleted = nil
	cacheService.deletedPatterns = nil

	if _, err := svc.Book(ctx, eventID, []string{seats[0].ID}, uuid.New()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantKey := constants.BuildEventSeatsKey(eventID.String())
	found := false
	for _, key := range cacheService.deleted {
		if key == wantKey {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected seat list key %q deleted, got %v", wantKey, cacheService.deleted)
	}

	// Event responses embed seat counts, so detail and listing caches must
	// go with every transition
	found = false
	for _, pattern := range cacheService.deletedPatterns {
		if pattern == constants.PATTERN_INVALIDATE_EVENTS_ALL {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected events pattern %q deleted, got %v", constants.PATTERN_INVALIDATE_EVENTS_ALL, cacheService.deletedPatterns)
	}
}

func TestService_Reconcile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	svc := NewService(NewMemoryStore())

	if err := svc.Seed(ctx, eventID, smallConfig()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	userID := uuid.New()
	keptID := layout.SeatKey(eventID, "Front", "Center", "A", 1)
	droppedID := layout.SeatKey(eventID, "Front", "Center", "B", 2)
	if _, err := svc.Book(ctx, eventID, []string{keptID, droppedID}, userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Row B shrinks to one seat, row C is new.
	next := layout.EventConfiguration{
		Zones: []layout.ZoneConfig{
			{Name: "Front", Sections: []layout.SectionConfig{
				{Name: "Center", Rows: []layout.RowConfig{
					{Label: "A", SeatCount: 3},
					{Label: "B", SeatCount: 1},
					{Label: "C", SeatCount: 4},
				}},
			}},
		},
	}

	if err := svc.Reconcile(ctx, eventID, next); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	seats, err := svc.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seats) != next.TotalSeats() {
		t.Fatalf("expected %d seats, got %d", next.TotalSeats(), len(seats))
	}

	byID := make(map[string]Seat, len(seats))
	for _, seat := range seats {
		byID[seat.ID] = seat
	}

	if _, exists := byID[droppedID]; exists {
		t.Fatalf("expected %s to be dropped by the new layout", droppedID)
	}

	kept, ok := byID[keptID]
	if !ok {
		t.Fatalf("expected %s to survive the layout edit", keptID)
	}
	if kept.Status != StatusPending {
		t.Fatalf("expected surviving seat to keep pending, got %s", kept.Status)
	}
	if kept.RequestedBy == nil || *kept.RequestedBy != userID {
		t.Fatalf("expected surviving seat to keep its user, got %v", kept.RequestedBy)
	}

	newID := layout.SeatKey(eventID, "Front", "Center", "C", 1)
	added, ok := byID[newID]
	if !ok {
		t.Fatalf("expected new seat %s to exist", newID)
	}
	if added.Status != StatusAvailable || added.RequestedBy != nil {
		t.Fatalf("expected new seat available and unowned, got %s %v", added.Status, added.RequestedBy)
	}
}

func TestService_ReconcileRenamedZone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	svc := NewService(NewMemoryStore())

	if err := svc.Seed(ctx, eventID, smallConfig()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	userID := uuid.New()
	oldID := layout.SeatKey(eventID, "Front", "Center", "A", 1)
	if _, err := svc.Book(ctx, eventID, []string{oldID}, userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Renaming the zone changes every seat identity underneath it.
	renamed := smallConfig()
	renamed.Zones[0].Name = "Stage"

	if err := svc.Reconcile(ctx, eventID, renamed); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	seats, err := svc.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seats) != renamed.TotalSeats() {
		t.Fatalf("expected %d seats, got %d", renamed.TotalSeats(), len(seats))
	}
	for _, seat := range seats {
		if seat.LabelZone != "Stage" {
			t.Fatalf("expected every seat under the renamed zone, got %q", seat.LabelZone)
		}
		if seat.Status != StatusAvailable || seat.RequestedBy != nil {
			t.Fatalf("seat %s: expected fresh available seat, got %s %v", seat.ID, seat.Status, seat.RequestedBy)
		}
	}
}

func TestService_CountsByStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	svc := NewService(NewMemoryStore())

	if err := svc.Seed(ctx, eventID, smallConfig()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	seats, err := svc.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	userID := uuid.New()
	if _, err := svc.Book(ctx, eventID, []string{seats[0].ID, seats[1].ID}, userID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Approve(ctx, eventID, []string{seats[0].ID}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Block(ctx, eventID, []string{seats[2].ID}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	counts, err := svc.CountsByStatus(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := map[Status]int{
		StatusAvailable: 2,
		StatusPending:   1,
		StatusReserved:  1,
		StatusBlocked:   1,
	}
	for status, count := range want {
		if counts[status] != count {
			t.Fatalf("expected %d %s seats, got %d", count, status, counts[status])
		}
	}
}
