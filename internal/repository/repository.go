package repository

import (
	"gorm.io/gorm"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// Repository is the gorm backed persistence gateway shared by all stores.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates or updates the tables of all stores.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Event{},
		&models.EventPrice{},
		&models.FormField{},
		&models.Registration{},
		&models.Donation{},
		&models.Anfrage{},
		&models.Newsletter{},
		&models.NewsletterSection{},
		&models.Subscriber{},
		&models.BoardMember{},
	)
}
