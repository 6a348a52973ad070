package repository

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func (r *Repository) CreateRegistration(ctx context.Context, registration *models.Registration) error {
	err := r.db.WithContext(ctx).Create(registration).Error
	return errors.Wrapf(err, "inserting registration for event %d", registration.EventID)
}

// ListRegistrations returns the registrations of an event, newest first.
func (r *Repository) ListRegistrations(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, errors.Wrapf(err, "listing registrations of event %d", eventID)
	}
	return registrations, nil
}
