package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// CreateNewsletter stores the newsletter and its sections in one
// transaction. Section positions follow the slice order.
func (r *Repository) CreateNewsletter(ctx context.Context, newsletter *models.Newsletter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sections := newsletter.Sections
		newsletter.Sections = nil

		if err := tx.Omit(clause.Associations).Create(newsletter).Error; err != nil {
			return errors.Wrap(err, "inserting newsletter")
		}

		for i := range sections {
			sections[i].NewsletterID = newsletter.ID
			sections[i].Position = i
		}
		if len(sections) > 0 {
			if err := tx.Create(&sections).Error; err != nil {
				return errors.Wrap(err, "inserting newsletter sections")
			}
		}
		newsletter.Sections = sections
		return nil
	})
}

func (r *Repository) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	var newsletters []models.Newsletter
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&newsletters).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing newsletters")
	}
	return newsletters, nil
}

func (r *Repository) GetNewsletter(ctx context.Context, id uint) (models.Newsletter, error) {
	var newsletter models.Newsletter
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("position").Order("id") }).
		First(&newsletter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newsletter, models.NotFound("newsletter %d not found", id)
		}
		return newsletter, errors.Wrapf(err, "loading newsletter %d", id)
	}
	return newsletter, nil
}

// MarkNewsletterSent records the delivery time. A newsletter is only ever
// marked once.
func (r *Repository) MarkNewsletterSent(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Newsletter{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", at)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "marking newsletter %d as sent", id)
	}
	if result.RowsAffected == 0 {
		return models.Conflict("newsletter %d was already sent", id)
	}
	return nil
}

// UpsertSubscriber inserts the subscriber or, when the email is known,
// reactivates the existing row with the new names and token.
func (r *Repository) UpsertSubscriber(ctx context.Context, subscriber *models.Subscriber) (bool, error) {
	reactivated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Subscriber
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", subscriber.Email).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return errors.Wrap(tx.Create(subscriber).Error, "inserting subscriber")
		case err != nil:
			return errors.Wrap(err, "looking up subscriber")
		}

		reactivated = true
		subscriber.ID = existing.ID
		return errors.Wrapf(reactivate(tx, subscriber), "reactivating subscriber %d", existing.ID)
	})
	return reactivated, err
}

func reactivate(tx *gorm.DB, subscriber *models.Subscriber) error {
	return tx.Model(&models.Subscriber{ID: subscriber.ID}).Updates(map[string]any{
		"first_name":        subscriber.FirstName,
		"last_name":         subscriber.LastName,
		"unsubscribe_token": subscriber.UnsubscribeToken,
		"opt_in":            subscriber.OptIn,
		"subscribed_at":     subscriber.SubscribedAt,
		"unsubscribed_at":   nil,
	}).Error
}

func (r *Repository) GetSubscriberByToken(ctx context.Context, token string) (models.Subscriber, error) {
	var subscriber models.Subscriber
	err := r.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&subscriber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return subscriber, models.NotFound("unknown unsubscribe token")
		}
		return subscriber, errors.Wrap(err, "looking up subscriber by token")
	}
	return subscriber, nil
}

func (r *Repository) UnsubscribeSubscriber(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("id = ? AND unsubscribed_at IS NULL", id).
		Update("unsubscribed_at", at)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "unsubscribing subscriber %d", id)
	}
	if result.RowsAffected == 0 {
		return models.BadRequest("already unsubscribed")
	}
	return nil
}

func (r *Repository) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.WithContext(ctx).Order("subscribed_at DESC").Order("id DESC").Find(&subscribers).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing subscribers")
	}
	return subscribers, nil
}

func (r *Repository) ListActiveSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := r.db.WithContext(ctx).Where("unsubscribed_at IS NULL").Order("id").Find(&subscribers).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing active subscribers")
	}
	return subscribers, nil
}

// ImportSubscribers adds new addresses and reactivates inactive ones in one
// transaction. Active addresses are left alone. It returns how many rows
// were inserted or reactivated.
func (r *Repository) ImportSubscribers(ctx context.Context, subscribers []models.Subscriber) (int, error) {
	imported := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range subscribers {
			subscriber := &subscribers[i]

			var existing models.Subscriber
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("email = ?", subscriber.Email).
				First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(subscriber).Error; err != nil {
					return errors.Wrapf(err, "importing subscriber %s", subscriber.Email)
				}
				imported++
			case err != nil:
				return errors.Wrapf(err, "looking up subscriber %s", subscriber.Email)
			case existing.Active():
				continue
			default:
				subscriber.ID = existing.ID
				if err := reactivate(tx, subscriber); err != nil {
					return errors.Wrapf(err, "reactivating subscriber %d", existing.ID)
				}
				imported++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
