package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seatwise/internal/layout"
	"seatwise/internal/seats"
)

type fakeRepository struct {
	events map[uuid.UUID]*Event
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: make(map[uuid.UUID]*Event)}
}

func (f *fakeRepository) Create(event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(id uuid.UUID) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeRepository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			event.Name = value.(string)
		case "description":
			event.Description = value.(string)
		case "venue":
			event.Venue = value.(string)
		case "date_time":
			event.DateTime = value.(time.Time)
		case "configuration":
			event.Configuration = value.(Configuration)
		case "updated_by":
			switch v := value.(type) {
			case uuid.UUID:
				event.UpdatedBy = &v
			case *uuid.UUID:
				event.UpdatedBy = v
			}
		case "updated_at":
			event.UpdatedAt = value.(time.Time)
		}
	}
	copied := *event
	return &copied, nil
}

func (f *fakeRepository) Delete(id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func (f *fakeRepository) GetAll(query EventListQuery) ([]Event, int64, error) {
	result := make([]Event, 0, len(f.events))
	for _, event := range f.events {
		result = append(result, *event)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) Exists(id uuid.UUID) (bool, error) {
	_, ok := f.events[id]
	return ok, nil
}

type fakeSeatService struct {
	seeded     []uuid.UUID
	reconciled []uuid.UUID
	deleted    []uuid.UUID
	seedErr    error
	recErr     error
}

func (f *fakeSeatService) Seed(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error {
	if f.seedErr != nil {
		return f.seedErr
	}
	f.seeded = append(f.seeded, eventID)
	return nil
}

func (f *fakeSeatService) Reconcile(ctx context.Context, eventID uuid.UUID, cfg layout.EventConfiguration) error {
	if f.recErr != nil {
		return f.recErr
	}
	f.reconciled = append(f.reconciled, eventID)
	return nil
}

func (f *fakeSeatService) DeleteForEvent(ctx context.Context, eventID uuid.UUID) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeSeatService) CountsByStatus(ctx context.Context, eventID uuid.UUID) (map[seats.Status]int, error) {
	return map[seats.Status]int{seats.StatusAvailable: 5}, nil
}

func testConfiguration() layout.EventConfiguration {
	return layout.EventConfiguration{
		Zones: []layout.ZoneConfig{
			{Name: "Front", Sections: []layout.SectionConfig{
				{Name: "Center", Rows: []layout.RowConfig{
					{Label: "A", SeatCount: 5},
				}},
			}},
		},
	}
}

func makeService() (Service, *fakeRepository, *fakeSeatService) {
	repo := newFakeRepository()
	seatSvc := &fakeSeatService{}
	svc := NewService(repo)
	svc.SetSeatService(seatSvc)
	return svc, repo, seatSvc
}

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:          "Launch Night",
		Description:   "Opening show",
		Venue:         "Main Hall",
		DateTime:      time.Now().Add(48 * time.Hour),
		Configuration: testConfiguration(),
	}
}

func TestService_CreateEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates the event and seeds its seats", func(t *testing.T) {
		svc, repo, seatSvc := makeService()

		response, err := svc.CreateEvent(ctx, userID, validCreateRequest())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if response.TotalSeats != 5 {
			t.Fatalf("expected 5 total seats, got %d", response.TotalSeats)
		}
		if response.SeatCounts["available"] != 5 {
			t.Fatalf("expected 5 available seats, got %d", response.SeatCounts["available"])
		}
		if len(seatSvc.seeded) != 1 {
			t.Fatalf("expected one seeding call, got %d", len(seatSvc.seeded))
		}
		if len(repo.events) != 1 {
			t.Fatalf("expected event persisted, got %d", len(repo.events))
		}
	})

	t.Run("rejects past dates", func(t *testing.T) {
		svc, _, _ := makeService()
		req := validCreateRequest()
		req.DateTime = time.Now().Add(-time.Hour)
		if _, err := svc.CreateEvent(ctx, userID, req); err == nil {
			t.Fatal("expected error for past event date")
		}
	})

	t.Run("rejects invalid configuration before persisting", func(t *testing.T) {
		svc, repo, _ := makeService()
		req := validCreateRequest()
		req.Configuration.Zones[0].Name = "Front-Stage"
		if _, err := svc.CreateEvent(ctx, userID, req); err == nil {
			t.Fatal("expected error for invalid configuration")
		}
		if len(repo.events) != 0 {
			t.Fatal("expected no event persisted after validation failure")
		}
	})

	t.Run("removes the event when seeding fails", func(t *testing.T) {
		svc, repo, seatSvc := makeService()
		seatSvc.seedErr = errors.New("store down")
		if _, err := svc.CreateEvent(ctx, userID, validCreateRequest()); err == nil {
			t.Fatal("expected error when seeding fails")
		}
		if len(repo.events) != 0 {
			t.Fatal("expected event rolled back after seeding failure")
		}
	})
}

func TestService_GetEventByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := makeService()

	created, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	id := uuid.MustParse(created.ID)
	got, err := svc.GetEventByID(ctx, id)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Name != "Launch Night" {
		t.Fatalf("expected name Launch Night, got %s", got.Name)
	}

	if _, err := svc.GetEventByID(ctx, uuid.New()); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestService_UpdateEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	create := func(t *testing.T, svc Service) uuid.UUID {
		t.Helper()
		created, err := svc.CreateEvent(ctx, userID, validCreateRequest())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return uuid.MustParse(created.ID)
	}

	t.Run("updates plain fields without reconciling", func(t *testing.T) {
		svc, _, seatSvc := makeService()
		id := create(t, svc)

		name := "Renamed Night"
		response, err := svc.UpdateEvent(ctx, id, userID, UpdateEventRequest{Name: &name})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if response.Name != name {
			t.Fatalf("expected name %q, got %q", name, response.Name)
		}
		if len(seatSvc.reconciled) != 0 {
			t.Fatalf("expected no reconciliation for a rename, got %d", len(seatSvc.reconciled))
		}
	})

	t.Run("reconciles when the configuration changes", func(t *testing.T) {
		svc, _, seatSvc := makeService()
		id := create(t, svc)

		next := testConfiguration()
		next.Zones[0].Sections[0].Rows[0].SeatCount = 8
		if _, err := svc.UpdateEvent(ctx, id, userID, UpdateEventRequest{Configuration: &next}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(seatSvc.reconciled) != 1 {
			t.Fatalf("expected one reconciliation, got %d", len(seatSvc.reconciled))
		}
	})

	t.Run("rolls the whole update back when reconciliation fails", func(t *testing.T) {
		svc, repo, seatSvc := makeService()
		id := create(t, svc)
		seatSvc.recErr = errors.New("store down")

		name := "Renamed Night"
		next := testConfiguration()
		next.Zones[0].Sections[0].Rows[0].SeatCount = 8
		if _, err := svc.UpdateEvent(ctx, id, userID, UpdateEventRequest{Name: &name, Configuration: &next}); err == nil {
			t.Fatal("expected error when reconciliation fails")
		}

		stored := repo.events[id]
		if got := stored.Configuration.Layout().TotalSeats(); got != 5 {
			t.Fatalf("expected configuration rolled back to 5 seats, got %d", got)
		}
		if stored.Name != "Launch Night" {
			t.Fatalf("expected name rolled back after failed update, got %q", stored.Name)
		}
		if stored.UpdatedBy != nil {
			t.Fatalf("expected updated_by rolled back, got %v", stored.UpdatedBy)
		}
	})

	t.Run("rejects empty updates", func(t *testing.T) {
		svc, _, _ := makeService()
		id := create(t, svc)
		if _, err := svc.UpdateEvent(ctx, id, userID, UpdateEventRequest{}); err == nil {
			t.Fatal("expected error for empty update")
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := makeService()
		name := "x"
		if _, err := svc.UpdateEvent(ctx, uuid.New(), userID, UpdateEventRequest{Name: &name}); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}

func TestService_DeleteEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, seatSvc := makeService()

	created, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	id := uuid.MustParse(created.ID)

	if err := svc.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(seatSvc.deleted) != 1 || seatSvc.deleted[0] != id {
		t.Fatalf("expected seats deleted for %s, got %v", id, seatSvc.deleted)
	}
	if len(repo.events) != 0 {
		t.Fatal("expected event removed")
	}

	if err := svc.DeleteEvent(ctx, id); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestService_EventExists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, _ := makeService()

	created, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	exists, err := svc.EventExists(ctx, uuid.MustParse(created.ID))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !exists {
		t.Fatal("expected event to exist")
	}

	exists, err = svc.EventExists(ctx, uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if exists {
		t.Fatal("expected event to not exist")
	}
}
