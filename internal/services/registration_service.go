package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/jugehoerig/vereinsapi/internal/metrics"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

const (
	sourcePublic = "public"
	sourceManual = "manual"
)

type RegistrationRepository interface {
	EventExists(ctx context.Context, id uint) (bool, error)
	ListFormFields(ctx context.Context, eventID uint) ([]models.FormField, error)
	CreateRegistration(ctx context.Context, registration *models.Registration) error
	ListRegistrations(ctx context.Context, eventID uint) ([]models.Registration, error)
}

type RegistrationService struct {
	repo RegistrationRepository
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

// Register stores a public form submission after checking it against the
// current schema of the event.
func (s *RegistrationService) Register(ctx context.Context, eventID uint, data map[string]any) (uint, error) {
	if data == nil {
		return 0, models.BadRequest("registration data must be an object")
	}
	if err := requireEvent(ctx, s.repo, eventID); err != nil {
		return 0, err
	}

	fields, err := s.repo.ListFormFields(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return s.store(ctx, eventID, fields, data, sourcePublic)
}

// AddManualRegistration lets the board enter a registration on behalf of a
// participant. It is only possible once the event has a form.
func (s *RegistrationService) AddManualRegistration(ctx context.Context, actor models.Actor, eventID uint, data map[string]any) (uint, error) {
	if err := actor.RequirePrivileged("add registrations"); err != nil {
		return 0, err
	}
	if data == nil {
		return 0, models.BadRequest("registration data must be an object")
	}
	if err := requireEvent(ctx, s.repo, eventID); err != nil {
		return 0, err
	}

	fields, err := s.repo.ListFormFields(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, models.BadRequest("event %d has no registration form", eventID)
	}
	return s.store(ctx, eventID, fields, data, sourceManual)
}

func (s *RegistrationService) store(ctx context.Context, eventID uint, fields []models.FormField, data map[string]any, source string) (uint, error) {
	if name, missing := models.MissingRequiredField(fields, data); missing {
		return 0, models.BadRequest("missing required field: %s", name)
	}

	registration := models.Registration{
		EventID: eventID,
		Data:    datatypes.JSONMap(data),
	}
	if err := s.repo.CreateRegistration(ctx, &registration); err != nil {
		return 0, err
	}

	metrics.RegistrationsTotal.WithLabelValues(source).Inc()
	zerolog.Ctx(ctx).Info().
		Uint("event_id", eventID).
		Uint("registration_id", registration.ID).
		Str("source", source).
		Msg("registration stored")
	return registration.ID, nil
}

// ListRegistrations returns the registrations newest first, each reduced to
// the fields of the current schema.
func (s *RegistrationService) ListRegistrations(ctx context.Context, actor models.Actor, eventID uint) (models.RegistrationListing, error) {
	if err := actor.RequirePrivileged("view registrations"); err != nil {
		return models.RegistrationListing{}, err
	}
	if err := requireEvent(ctx, s.repo, eventID); err != nil {
		return models.RegistrationListing{}, err
	}

	fields, err := s.repo.ListFormFields(ctx, eventID)
	if err != nil {
		return models.RegistrationListing{}, err
	}
	registrations, err := s.repo.ListRegistrations(ctx, eventID)
	if err != nil {
		return models.RegistrationListing{}, err
	}

	names := models.FieldNames(fields)
	listing := models.RegistrationListing{
		Fields:        names,
		Registrations: make([]models.ProjectedRegistration, 0, len(registrations)),
	}
	for _, registration := range registrations {
		listing.Registrations = append(listing.Registrations, models.ProjectedRegistration{
			ID:        registration.ID,
			Data:      models.Project(names, registration.Data),
			CreatedAt: registration.CreatedAt,
		})
	}
	return listing, nil
}
