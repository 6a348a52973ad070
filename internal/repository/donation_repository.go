package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func (r *Repository) GetDonation(ctx context.Context) (models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).Order("id").First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return donation, models.NotFound("no donation details stored")
		}
		return donation, errors.Wrap(err, "loading donation details")
	}
	return donation, nil
}

// CreateDonation stores the donation details unless a record already exists.
func (r *Repository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Donation{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "counting donation details")
		}
		if count > 0 {
			return models.BadRequest("donation details already exist, update them instead")
		}
		return errors.Wrap(tx.Create(donation).Error, "inserting donation details")
	})
}

// UpdateDonation writes the assignments onto the stored record and returns
// the result.
func (r *Repository) UpdateDonation(ctx context.Context, assignments map[string]any) (models.Donation, error) {
	var donation models.Donation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("no donation details stored")
			}
			return errors.Wrap(err, "loading donation details")
		}
		if len(assignments) == 0 {
			return nil
		}
		if err := tx.Model(&donation).Updates(assignments).Error; err != nil {
			return errors.Wrapf(err, "updating donation details %d", donation.ID)
		}
		return errors.Wrapf(tx.First(&donation, donation.ID).Error, "reloading donation details %d", donation.ID)
	})
	return donation, err
}

func (r *Repository) DeleteDonation(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Donation{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "deleting donation details")
	}
	if result.RowsAffected == 0 {
		return models.NotFound("no donation details stored")
	}
	return nil
}
