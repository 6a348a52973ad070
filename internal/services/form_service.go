package services

import (
	"context"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type FormRepository interface {
	EventExists(ctx context.Context, id uint) (bool, error)
	ReplaceFormFields(ctx context.Context, eventID uint, fields []models.FormField) error
	ListFormFields(ctx context.Context, eventID uint) ([]models.FormField, error)
}

type FormService struct {
	repo FormRepository
}

func NewFormService(repo FormRepository) *FormService {
	return &FormService{repo: repo}
}

// SetFormSchema replaces the whole field set of an event. A nil slice means
// the field list was missing from the request; an empty one clears the form.
func (s *FormService) SetFormSchema(ctx context.Context, actor models.Actor, eventID uint, inputs []models.FormFieldInput) error {
	if err := actor.RequirePrivileged("edit registration forms"); err != nil {
		return err
	}
	if inputs == nil {
		return models.BadRequest("form fields must be an array")
	}

	fields, err := models.NewFormFields(eventID, inputs)
	if err != nil {
		return err
	}

	if err := requireEvent(ctx, s.repo, eventID); err != nil {
		return err
	}
	return s.repo.ReplaceFormFields(ctx, eventID, fields)
}

func (s *FormService) GetFormSchema(ctx context.Context, eventID uint) ([]models.FormField, error) {
	return s.repo.ListFormFields(ctx, eventID)
}

type eventChecker interface {
	EventExists(ctx context.Context, id uint) (bool, error)
}

func requireEvent(ctx context.Context, repo eventChecker, eventID uint) error {
	exists, err := repo.EventExists(ctx, eventID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NotFound("event %d not found", eventID)
	}
	return nil
}
