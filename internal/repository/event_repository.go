package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// CreateEvent stores the event and its price tiers in one transaction.
func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prices := event.Prices
		event.Prices = nil

		if err := tx.Omit(clause.Associations).Create(event).Error; err != nil {
			return errors.Wrap(err, "inserting event")
		}

		if len(prices) > 0 {
			for i := range prices {
				prices[i].EventID = event.ID
			}
			if err := tx.Create(&prices).Error; err != nil {
				return errors.Wrap(err, "inserting event prices")
			}
		}
		event.Prices = prices
		return nil
	})
}

// ExpireEvents marks every active event whose end time lies before now as
// ended.
func (r *Repository) ExpireEvents(ctx context.Context, now time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("status = ? AND end_time < ?", models.EventStatusActive, now).
		Update("status", models.EventStatusEnded).Error
	return errors.Wrap(err, "expiring events")
}

func (r *Repository) ExpireEvent(ctx context.Context, id uint, now time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status = ? AND end_time < ?", id, models.EventStatusActive, now).
		Update("status", models.EventStatusEnded).Error
	return errors.Wrapf(err, "expiring event %d", id)
}

func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Preload("Prices", orderByID).
		Order("start_time DESC").
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing events")
	}
	return events, nil
}

func (r *Repository) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Preload("Prices", orderByID).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event, models.NotFound("event %d not found", id)
		}
		return event, errors.Wrapf(err, "loading event %d", id)
	}
	return event, nil
}

func (r *Repository) EventExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "checking event %d", id)
	}
	return count > 0, nil
}

// UpdateEvent applies the column assignments and, when requested, replaces
// the price tiers and the form schema. Either all parts are written or none.
func (r *Repository) UpdateEvent(ctx context.Context, id uint, update models.EventUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Select("id").First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("event %d not found", id)
			}
			return errors.Wrapf(err, "locking event %d", id)
		}

		if len(update.Assignments) > 0 {
			if err := tx.Model(&event).Updates(update.Assignments).Error; err != nil {
				return errors.Wrapf(err, "updating event %d", id)
			}
		}

		if update.ReplacePrices {
			if err := tx.Where("event_id = ?", id).Delete(&models.EventPrice{}).Error; err != nil {
				return errors.Wrapf(err, "removing prices of event %d", id)
			}
			if len(update.Prices) > 0 {
				for i := range update.Prices {
					update.Prices[i].EventID = id
				}
				if err := tx.Create(&update.Prices).Error; err != nil {
					return errors.Wrapf(err, "inserting prices of event %d", id)
				}
			}
		}

		if update.ReplaceFields {
			if err := replaceFormFields(tx, id, update.Fields); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteEvent removes the event together with its registrations, its form
// schema and its price tiers.
func (r *Repository) DeleteEvent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []any{&models.Registration{}, &models.FormField{}, &models.EventPrice{}}
		for _, model := range dependents {
			if err := tx.Where("event_id = ?", id).Delete(model).Error; err != nil {
				return errors.Wrapf(err, "removing dependents of event %d", id)
			}
		}

		result := tx.Delete(&models.Event{}, id)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "deleting event %d", id)
		}
		if result.RowsAffected == 0 {
			return models.NotFound("event %d not found", id)
		}
		return nil
	})
}

// NextEventID reads the id the events sequence hands out next without
// consuming it.
func (r *Repository) NextEventID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Raw("SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM events_id_seq").
		Scan(&next).Error
	if err != nil {
		return 0, errors.Wrap(err, "reading events sequence")
	}
	return next, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
