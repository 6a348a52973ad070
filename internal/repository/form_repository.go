package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// ReplaceFormFields swaps the whole schema of an event atomically.
func (r *Repository) ReplaceFormFields(ctx context.Context, eventID uint, fields []models.FormField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceFormFields(tx, eventID, fields)
	})
}

func replaceFormFields(tx *gorm.DB, eventID uint, fields []models.FormField) error {
	if err := tx.Where("event_id = ?", eventID).Delete(&models.FormField{}).Error; err != nil {
		return errors.Wrapf(err, "removing form fields of event %d", eventID)
	}
	if len(fields) == 0 {
		return nil
	}
	for i := range fields {
		fields[i].EventID = eventID
	}
	if err := tx.Create(&fields).Error; err != nil {
		return errors.Wrapf(err, "inserting form fields of event %d", eventID)
	}
	return nil
}

func (r *Repository) ListFormFields(ctx context.Context, eventID uint) ([]models.FormField, error) {
	var fields []models.FormField
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position").
		Order("id").
		Find(&fields).Error
	if err != nil {
		return nil, errors.Wrapf(err, "listing form fields of event %d", eventID)
	}
	return fields, nil
}
