package services

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/metrics"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	ExpireEvents(ctx context.Context, now time.Time) error
	ExpireEvent(ctx context.Context, id uint, now time.Time) error
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id uint) (models.Event, error)
	UpdateEvent(ctx context.Context, id uint, update models.EventUpdate) error
	DeleteEvent(ctx context.Context, id uint) error
	NextEventID(ctx context.Context) (int64, error)
}

type EventService struct {
	repo EventRepository
	now  func() time.Time
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo, now: time.Now}
}

// CreateEvent validates the input, normalizes the optional image and stores
// the event with its price tiers.
func (s *EventService) CreateEvent(ctx context.Context, actor models.Actor, input models.EventInput) (uint, error) {
	if err := actor.RequirePrivileged("create events"); err != nil {
		return 0, err
	}

	var missing []string
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(input.Location) == "" {
		missing = append(missing, "location")
	}
	if input.StartTime.IsZero() {
		missing = append(missing, "start")
	}
	if input.EndTime.IsZero() {
		missing = append(missing, "end")
	}
	if len(missing) > 0 {
		return 0, models.BadRequest("missing required fields: %s", strings.Join(missing, ", "))
	}

	event := models.Event{
		Title:            input.Title,
		Description:      input.Description,
		Location:         input.Location,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		Status:           models.EventStatusActive,
		ImageCaption:     input.ImageCaption,
		OpenToAll:        input.OpenToAll,
		HasSupporterTier: input.HasSupporterTier,
		Prices:           models.NewEventPrices(0, input.Prices),
	}

	if input.Image != "" {
		image, err := helpers.NormalizeImage(input.Image)
		if err != nil {
			return 0, err
		}
		event.Image = &image
	}

	if err := s.repo.CreateEvent(ctx, &event); err != nil {
		return 0, errors.Wrap(err, "creating event")
	}
	return event.ID, nil
}

// ListEvents ends every overdue event before reading, so no active event in
// the result has an end time in the past.
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	if err := s.repo.ExpireEvents(ctx, s.now()); err != nil {
		return nil, err
	}
	metrics.EventExpiryRunsTotal.WithLabelValues("all").Inc()
	return s.repo.ListEvents(ctx)
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	if err := s.repo.ExpireEvent(ctx, id, s.now()); err != nil {
		return models.Event{}, err
	}
	metrics.EventExpiryRunsTotal.WithLabelValues("single").Inc()
	return s.repo.GetEvent(ctx, id)
}

// UpdateEvent writes the fields present in patch. Replacing the price tiers
// or the form schema happens in the same transaction as the column update.
func (s *EventService) UpdateEvent(ctx context.Context, actor models.Actor, id uint, patch models.EventPatch) error {
	if err := actor.RequirePrivileged("update events"); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return models.BadRequest("no fields to update")
	}

	for _, text := range []struct {
		name  string
		value null.String
	}{
		{"title", patch.Title},
		{"description", patch.Description},
		{"location", patch.Location},
	} {
		if text.value.Valid && strings.TrimSpace(text.value.String) == "" {
			return models.BadRequest("%s must not be empty", text.name)
		}
	}

	if patch.Status.Valid && !models.ValidEventStatus(patch.Status.String) {
		return models.BadRequest("invalid status %q, expected %q or %q",
			patch.Status.String, models.EventStatusActive, models.EventStatusEnded)
	}

	update := models.EventUpdate{Assignments: patch.Assignments()}

	if patch.Image.Valid {
		if patch.Image.String == "" {
			update.Assignments["image"] = nil
		} else {
			image, err := helpers.NormalizeImage(patch.Image.String)
			if err != nil {
				return err
			}
			update.Assignments["image"] = image
		}
	}

	if patch.Prices != nil {
		update.ReplacePrices = true
		update.Prices = models.NewEventPrices(id, patch.Prices)
	}

	if patch.FormFields != nil {
		fields, err := models.NewFormFields(id, patch.FormFields)
		if err != nil {
			return err
		}
		update.ReplaceFields = true
		update.Fields = fields
	}

	return s.repo.UpdateEvent(ctx, id, update)
}

func (s *EventService) DeleteEvent(ctx context.Context, actor models.Actor, id uint) error {
	if err := actor.RequirePrivileged("delete events"); err != nil {
		return err
	}
	return s.repo.DeleteEvent(ctx, id)
}

// NextEventID reports the id the next created event will receive.
func (s *EventService) NextEventID(ctx context.Context) (int64, error) {
	return s.repo.NextEventID(ctx)
}
