package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jugehoerig/vereinsapi/internal/metrics"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

type AnfrageRepository interface {
	CreateAnfrage(ctx context.Context, anfrage *models.Anfrage) error
	ListAnfragen(ctx context.Context) ([]models.Anfrage, error)
	GetAnfrage(ctx context.Context, id uint) (models.Anfrage, error)
}

// AnfrageNotifier tells the board about a new inquiry.
type AnfrageNotifier interface {
	NotifyAnfrage(ctx context.Context, anfrage models.Anfrage) error
}

type AnfrageService struct {
	repo     AnfrageRepository
	notifier AnfrageNotifier
}

func NewAnfrageService(repo AnfrageRepository, notifier AnfrageNotifier) *AnfrageService {
	return &AnfrageService{repo: repo, notifier: notifier}
}

// CreateAnfrage stores the inquiry and sends the notification. A failed mail
// is logged and counted but does not fail the request.
func (s *AnfrageService) CreateAnfrage(ctx context.Context, anfrage models.Anfrage) (uint, error) {
	anfrage.Name = strings.TrimSpace(anfrage.Name)
	anfrage.Email = strings.TrimSpace(anfrage.Email)
	if anfrage.Name == "" || anfrage.Email == "" || strings.TrimSpace(anfrage.Message) == "" {
		return 0, models.BadRequest("name, email and message are required")
	}

	if err := s.repo.CreateAnfrage(ctx, &anfrage); err != nil {
		return 0, err
	}
	metrics.AnfragenTotal.Inc()

	if s.notifier != nil {
		if err := s.notifier.NotifyAnfrage(ctx, anfrage); err != nil {
			metrics.MailFailuresTotal.Inc()
			zerolog.Ctx(ctx).Error().Err(err).Uint("anfrage_id", anfrage.ID).Msg("inquiry notification failed")
		}
	}
	return anfrage.ID, nil
}

func (s *AnfrageService) ListAnfragen(ctx context.Context, actor models.Actor) ([]models.Anfrage, error) {
	if err := actor.RequirePrivileged("view inquiries"); err != nil {
		return nil, err
	}
	return s.repo.ListAnfragen(ctx)
}

func (s *AnfrageService) GetAnfrage(ctx context.Context, actor models.Actor, id uint) (models.Anfrage, error) {
	if err := actor.RequirePrivileged("view inquiries"); err != nil {
		return models.Anfrage{}, err
	}
	return s.repo.GetAnfrage(ctx, id)
}
