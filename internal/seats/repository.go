package seats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seatwise/internal/layout"
)

// repository is the Postgres-backed Store. The database serializes row
// access on its own, but the per-event locks are still held across each
// mutation so a reconciliation and a bulk status update for the same event
// can never interleave (multi-statement mutations are not covered by row
// locking alone).
type repository struct {
	db    *gorm.DB
	locks *eventLocks
}

// NewRepository creates a Store backed by the given gorm database.
func NewRepository(db *gorm.DB) Store {
	return &repository{
		db:    db,
		locks: newEventLocks(),
	}
}

func (r *repository) CreateAll(ctx context.Context, eventID uuid.UUID, identities []layout.SeatIdentity) error {
	if len(identities) == 0 {
		return nil
	}

	unlock := r.locks.Lock(eventID)
	defer unlock()

	records := make([]Seat, len(identities))
	for i, identity := range identities {
		records[i] = NewSeat(eventID, identity, i)
	}

	// ON CONFLICT DO NOTHING: re-seeding an event must not overwrite the
	// status of seats that already exist
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}

	return nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	unlock := r.locks.RLock(eventID)
	defer unlock()

	var result []Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) GetMany(ctx context.Context, eventID uuid.UUID, ids []string) (map[string]Seat, error) {
	if len(ids) == 0 {
		return map[string]Seat{}, nil
	}

	unlock := r.locks.RLock(eventID)
	defer unlock()

	var found []Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND id IN ?", eventID, ids).
		Find(&found).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]Seat, len(found))
	for _, seat := range found {
		result[seat.ID] = seat
	}
	return result, nil
}

func (r *repository) ApplyStatus(ctx context.Context, eventID uuid.UUID, ids []string, update StatusUpdate) ([]Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unlock := r.locks.Lock(eventID)
	defer unlock()

	columns := map[string]interface{}{"status": update.Status}
	switch update.Owner {
	case OwnerClear:
		columns["requested_by"] = nil
	case OwnerSet:
		columns["requested_by"] = update.RequestedBy
	case OwnerKeep:
		// requested_by column untouched
	}

	var updated []Seat
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Seat{}).
			Where("event_id = ? AND id IN ?", eventID, ids).
			Updates(columns).Error; err != nil {
			return err
		}

		// return only the seats that matched; unknown ids are skipped
		return tx.
			Where("event_id = ? AND id IN ?", eventID, ids).
			Order("position ASC").
			Find(&updated).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply seat status: %w", err)
	}

	return updated, nil
}

func (r *repository) ReplaceAll(ctx context.Context, eventID uuid.UUID, seats []Seat) error {
	unlock := r.locks.Lock(eventID)
	defer unlock()

	// delete-then-insert inside one transaction so a concurrent read sees
	// either the old set or the new set, never a mix
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&Seat{}).Error; err != nil {
			return err
		}
		if len(seats) == 0 {
			return nil
		}
		return tx.Create(&seats).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace seats: %w", err)
	}

	return nil
}

func (r *repository) ResetAll(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	unlock := r.locks.Lock(eventID)
	defer unlock()

	var reset []Seat
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Seat{}).
			Where("event_id = ?", eventID).
			Updates(map[string]interface{}{
				"status":       StatusAvailable,
				"requested_by": nil,
			}).Error; err != nil {
			return err
		}

		return tx.
			Where("event_id = ?", eventID).
			Order("position ASC").
			Find(&reset).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset seats: %w", err)
	}

	return reset, nil
}

func (r *repository) DeleteAllForEvent(ctx context.Context, eventID uuid.UUID) error {
	unlock := r.locks.Lock(eventID)
	defer unlock()

	return r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Seat{}).Error
}
