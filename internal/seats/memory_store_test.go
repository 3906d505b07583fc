package seats

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"seatwise/internal/layout"
)

func testIdentities(t *testing.T, eventID uuid.UUID) []layout.SeatIdentity {
	t.Helper()

	cfg := layout.EventConfiguration{
		Zones: []layout.ZoneConfig{
			{Name: "Front", Sections: []layout.SectionConfig{
				{Name: "Center", Rows: []layout.RowConfig{
					{Label: "A", SeatCount: 3},
					{Label: "B", SeatCount: 2},
				}},
			}},
		},
	}
	identities, err := layout.Expand(eventID, cfg)
	if err != nil {
		t.Fatalf("expected no error expanding layout, got %v", err)
	}
	return identities
}

func TestMemoryStore_CreateAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()

	t.Run("creates available unowned seats in order", func(t *testing.T) {
		store := NewMemoryStore()
		identities := testIdentities(t, eventID)

		if err := store.CreateAll(ctx, eventID, identities); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		seats, err := store.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(seats) != len(identities) {
			t.Fatalf("expected %d seats, got %d", len(identities), len(seats))
		}
		for i, seat := range seats {
			if seat.ID != identities[i].ID {
				t.Fatalf("position %d: expected %q, got %q", i, identities[i].ID, seat.ID)
			}
			if seat.Status != StatusAvailable {
				t.Fatalf("expected status available, got %s", seat.Status)
			}
			if seat.RequestedBy != nil {
				t.Fatalf("expected no requesting user, got %v", seat.RequestedBy)
			}
		}
	})

	t.Run("does not overwrite existing seats", func(t *testing.T) {
		store := NewMemoryStore()
		identities := testIdentities(t, eventID)
		if err := store.CreateAll(ctx, eventID, identities); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		userID := uuid.New()
		if _, err := store.ApplyStatus(ctx, eventID, []string{identities[0].ID}, BookUpdate(userID)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// re-seed with the same layout
		if err := store.CreateAll(ctx, eventID, identities); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := store.GetMany(ctx, eventID, []string{identities[0].ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		seat := got[identities[0].ID]
		if seat.Status != StatusPending {
			t.Fatalf("expected re-seed to preserve pending status, got %s", seat.Status)
		}
		if seat.RequestedBy == nil || *seat.RequestedBy != userID {
			t.Fatalf("expected re-seed to preserve requesting user, got %v", seat.RequestedBy)
		}
	})
}

func TestMemoryStore_ApplyStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()

	t.Run("skips unknown ids", func(t *testing.T) {
		store := NewMemoryStore()
		identities := testIdentities(t, eventID)
		if err := store.CreateAll(ctx, eventID, identities); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		ids := []string{identities[0].ID, "no-such-seat"}
		updated, err := store.ApplyStatus(ctx, eventID, ids, BlockUpdate())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(updated) != 1 {
			t.Fatalf("expected 1 updated seat, got %d", len(updated))
		}
		if updated[0].Status != StatusBlocked {
			t.Fatalf("expected blocked, got %s", updated[0].Status)
		}
	})

	t.Run("applies the owner rule", func(t *testing.T) {
		store := NewMemoryStore()
		identities := testIdentities(t, eventID)
		if err := store.CreateAll(ctx, eventID, identities); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		userID := uuid.New()
		id := identities[0].ID

		updated, err := store.ApplyStatus(ctx, eventID, []string{id}, BookUpdate(userID))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].RequestedBy == nil || *updated[0].RequestedBy != userID {
			t.Fatalf("expected owner set to %s, got %v", userID, updated[0].RequestedBy)
		}

		updated, err = store.ApplyStatus(ctx, eventID, []string{id}, ApproveUpdate())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Status != StatusReserved {
			t.Fatalf("expected reserved, got %s", updated[0].Status)
		}
		if updated[0].RequestedBy == nil || *updated[0].RequestedBy != userID {
			t.Fatalf("expected approve to keep the owner, got %v", updated[0].RequestedBy)
		}

		updated, err = store.ApplyStatus(ctx, eventID, []string{id}, RejectUpdate())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated[0].Status != StatusAvailable {
			t.Fatalf("expected available, got %s", updated[0].Status)
		}
		if updated[0].RequestedBy != nil {
			t.Fatalf("expected reject to clear the owner, got %v", updated[0].RequestedBy)
		}
	})
}

func TestMemoryStore_ReplaceAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	store := NewMemoryStore()

	identities := testIdentities(t, eventID)
	if err := store.CreateAll(ctx, eventID, identities); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	replacement := []Seat{
		NewSeat(eventID, identities[1], 0),
		NewSeat(eventID, identities[0], 1),
	}
	if err := store.ReplaceAll(ctx, eventID, replacement); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	seats, err := store.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seats) != 2 {
		t.Fatalf("expected 2 seats after replace, got %d", len(seats))
	}
	if seats[0].ID != identities[1].ID || seats[1].ID != identities[0].ID {
		t.Fatalf("expected listing to follow position order, got %q then %q", seats[0].ID, seats[1].ID)
	}
}

func TestMemoryStore_ResetAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	store := NewMemoryStore()

	identities := testIdentities(t, eventID)
	if err := store.CreateAll(ctx, eventID, identities); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	userID := uuid.New()
	if _, err := store.ApplyStatus(ctx, eventID, []string{identities[0].ID}, BookUpdate(userID)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.ApplyStatus(ctx, eventID, []string{identities[1].ID}, BlockUpdate()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	reset, err := store.ResetAll(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(reset) != len(identities) {
		t.Fatalf("expected %d reset seats, got %d", len(identities), len(reset))
	}
	for _, seat := range reset {
		if seat.Status != StatusAvailable {
			t.Fatalf("seat %s: expected available, got %s", seat.ID, seat.Status)
		}
		if seat.RequestedBy != nil {
			t.Fatalf("seat %s: expected no requesting user, got %v", seat.ID, seat.RequestedBy)
		}
	}
}

func TestMemoryStore_DeleteAllForEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eventID := uuid.New()
	otherID := uuid.New()
	store := NewMemoryStore()

	if err := store.CreateAll(ctx, eventID, testIdentities(t, eventID)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := store.CreateAll(ctx, otherID, testIdentities(t, otherID)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := store.DeleteAllForEvent(ctx, eventID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	seats, err := store.ListByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seats) != 0 {
		t.Fatalf("expected no seats after delete, got %d", len(seats))
	}

	others, err := store.ListByEvent(ctx, otherID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(others) == 0 {
		t.Fatal("expected other event's seats to survive")
	}
}
