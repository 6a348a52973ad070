package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func (r *Repository) CreateAnfrage(ctx context.Context, anfrage *models.Anfrage) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(anfrage).Error, "inserting inquiry")
}

func (r *Repository) ListAnfragen(ctx context.Context) ([]models.Anfrage, error) {
	var anfragen []models.Anfrage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&anfragen).Error; err != nil {
		return nil, errors.Wrap(err, "listing inquiries")
	}
	return anfragen, nil
}

func (r *Repository) GetAnfrage(ctx context.Context, id uint) (models.Anfrage, error) {
	var anfrage models.Anfrage
	if err := r.db.WithContext(ctx).First(&anfrage, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return anfrage, models.NotFound("inquiry %d not found", id)
		}
		return anfrage, errors.Wrapf(err, "loading inquiry %d", id)
	}
	return anfrage, nil
}
