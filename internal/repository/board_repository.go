package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func usernameTaken(tx *gorm.DB, username string, exceptID uint) error {
	var count int64
	err := tx.Model(&models.BoardMember{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "checking username")
	}
	if count > 0 {
		return models.Conflict("username %q is already taken", username)
	}
	return nil
}

// CreateBoardMember stores a profile unless its username is already used.
func (r *Repository) CreateBoardMember(ctx context.Context, member *models.BoardMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := usernameTaken(tx, member.Username, 0); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(member).Error, "inserting board member")
	})
}

// ListBoardMembers returns the profiles in the order they were created.
func (r *Repository) ListBoardMembers(ctx context.Context) ([]models.BoardMember, error) {
	var members []models.BoardMember
	if err := r.db.WithContext(ctx).Order("id").Find(&members).Error; err != nil {
		return nil, errors.Wrap(err, "listing board members")
	}
	return members, nil
}

// FindBoardMember matches a profile by id or by username.
func (r *Repository) FindBoardMember(ctx context.Context, id int64, username string) (models.BoardMember, error) {
	var member models.BoardMember
	err := r.db.WithContext(ctx).
		Where("id = ? OR username = ?", id, username).
		Order("id").
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return member, models.NotFound("no board profile for %q", username)
		}
		return member, errors.Wrapf(err, "loading board profile for %q", username)
	}
	return member, nil
}

// UpdateBoardMember applies the assignments and returns the stored profile.
// A username change that collides with another profile is a conflict.
func (r *Repository) UpdateBoardMember(ctx context.Context, id uint, assignments map[string]any) (models.BoardMember, error) {
	var member models.BoardMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NotFound("board member %d not found", id)
			}
			return errors.Wrapf(err, "loading board member %d", id)
		}
		if username, ok := assignments["username"].(string); ok {
			if err := usernameTaken(tx, username, id); err != nil {
				return err
			}
		}
		if err := tx.Model(&member).Updates(assignments).Error; err != nil {
			return errors.Wrapf(err, "updating board member %d", id)
		}
		return errors.Wrapf(tx.First(&member, id).Error, "reloading board member %d", id)
	})
	return member, err
}
