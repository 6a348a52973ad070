package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/metrics"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

const unsubscribeTokenBytes = 20

type NewsletterRepository interface {
	CreateNewsletter(ctx context.Context, newsletter *models.Newsletter) error
	ListNewsletters(ctx context.Context) ([]models.Newsletter, error)
	GetNewsletter(ctx context.Context, id uint) (models.Newsletter, error)
	MarkNewsletterSent(ctx context.Context, id uint, at time.Time) error
	UpsertSubscriber(ctx context.Context, subscriber *models.Subscriber) (bool, error)
	GetSubscriberByToken(ctx context.Context, token string) (models.Subscriber, error)
	UnsubscribeSubscriber(ctx context.Context, id uint, at time.Time) error
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
	ListActiveSubscribers(ctx context.Context) ([]models.Subscriber, error)
	ImportSubscribers(ctx context.Context, subscribers []models.Subscriber) (int, error)
}

// NewsletterSender delivers a newsletter to its recipients.
type NewsletterSender interface {
	SendNewsletter(ctx context.Context, newsletter models.Newsletter, subscribers []models.Subscriber) error
}

type NewsletterService struct {
	repo   NewsletterRepository
	sender NewsletterSender
	now    func() time.Time
	token  func() (string, error)
}

func NewNewsletterService(repo NewsletterRepository, sender NewsletterSender) *NewsletterService {
	return &NewsletterService{repo: repo, sender: sender, now: time.Now, token: newUnsubscribeToken}
}

func newUnsubscribeToken() (string, error) {
	buf := make([]byte, unsubscribeTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generating unsubscribe token")
	}
	return hex.EncodeToString(buf), nil
}

// CreateNewsletter stores a newsletter with its sections. Section images are
// normalized to PNG like event images.
func (s *NewsletterService) CreateNewsletter(ctx context.Context, actor models.Actor, input models.NewsletterInput) (uint, error) {
	if err := actor.RequirePrivileged("create newsletters"); err != nil {
		return 0, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.SendDate) == "" || len(input.Sections) == 0 {
		return 0, models.BadRequest("title, send_date and at least one section are required")
	}
	sendDate, err := helpers.ParseEventTime("send_date", input.SendDate)
	if err != nil {
		return 0, err
	}

	newsletter := models.Newsletter{
		Title:    title,
		SendDate: sendDate,
		Sections: make([]models.NewsletterSection, 0, len(input.Sections)),
	}
	for i, in := range input.Sections {
		section := models.NewsletterSection{
			Position: i,
			Subtitle: strings.TrimSpace(in.Subtitle),
			Text:     in.Text,
		}
		if in.Image != "" {
			image, err := helpers.NormalizeImage(in.Image)
			if err != nil {
				return 0, errors.Wrapf(err, "section %d", i+1)
			}
			section.Image = &image
		}
		newsletter.Sections = append(newsletter.Sections, section)
	}

	if err := s.repo.CreateNewsletter(ctx, &newsletter); err != nil {
		return 0, err
	}
	return newsletter.ID, nil
}

func (s *NewsletterService) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	return s.repo.ListNewsletters(ctx)
}

func (s *NewsletterService) GetNewsletter(ctx context.Context, id uint) (models.Newsletter, error) {
	return s.repo.GetNewsletter(ctx, id)
}

// SendNewsletter mails the newsletter to every active subscriber and marks
// it as sent. A newsletter is sent at most once.
func (s *NewsletterService) SendNewsletter(ctx context.Context, actor models.Actor, id uint) (int, error) {
	if err := actor.RequirePrivileged("send newsletters"); err != nil {
		return 0, err
	}

	newsletter, err := s.repo.GetNewsletter(ctx, id)
	if err != nil {
		return 0, err
	}
	if newsletter.SentAt != nil {
		return 0, models.Conflict("newsletter %d was already sent on %s", id, newsletter.SentAt.Format(time.DateOnly))
	}
	if s.sender == nil {
		return 0, errors.New("newsletter delivery is not configured")
	}

	subscribers, err := s.repo.ListActiveSubscribers(ctx)
	if err != nil {
		return 0, err
	}
	if len(subscribers) == 0 {
		return 0, models.BadRequest("there are no active subscribers")
	}

	if err := s.sender.SendNewsletter(ctx, newsletter, subscribers); err != nil {
		metrics.MailFailuresTotal.Inc()
		return 0, errors.Wrapf(err, "delivering newsletter %d", id)
	}
	metrics.NewsletterMailsTotal.Add(float64(len(subscribers)))

	if err := s.repo.MarkNewsletterSent(ctx, id, s.now()); err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Info().Uint("newsletter_id", id).Int("recipients", len(subscribers)).Msg("newsletter delivered")
	return len(subscribers), nil
}

// Subscribe registers an address after explicit opt-in. A known address is
// reactivated and gets a fresh unsubscribe token.
func (s *NewsletterService) Subscribe(ctx context.Context, input models.SubscriberInput) (bool, error) {
	if !input.Complete() {
		return false, models.BadRequest("vorname, nachname and email are required")
	}
	if !input.OptIn {
		return false, models.BadRequest("newsletter opt-in is required")
	}

	subscriber, err := s.newSubscriber(input)
	if err != nil {
		return false, err
	}
	reactivated, err := s.repo.UpsertSubscriber(ctx, &subscriber)
	if err != nil {
		return false, err
	}

	action := "subscribed"
	if reactivated {
		action = "reactivated"
	}
	metrics.NewsletterSubscriptionsTotal.WithLabelValues(action).Inc()
	return reactivated, nil
}

func (s *NewsletterService) newSubscriber(input models.SubscriberInput) (models.Subscriber, error) {
	token, err := s.token()
	if err != nil {
		return models.Subscriber{}, err
	}
	return models.Subscriber{
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Email:            models.NormalizeEmail(input.Email),
		UnsubscribeToken: token,
		OptIn:            true,
		SubscribedAt:     s.now(),
	}, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.BadRequest("token is required")
	}

	subscriber, err := s.repo.GetSubscriberByToken(ctx, token)
	if err != nil {
		return err
	}
	if !subscriber.Active() {
		return models.BadRequest("already unsubscribed")
	}
	if err := s.repo.UnsubscribeSubscriber(ctx, subscriber.ID, s.now()); err != nil {
		return err
	}
	metrics.NewsletterSubscriptionsTotal.WithLabelValues("unsubscribed").Inc()
	return nil
}

func (s *NewsletterService) ListSubscribers(ctx context.Context, actor models.Actor) ([]models.Subscriber, error) {
	if err := actor.RequirePrivileged("view newsletter subscribers"); err != nil {
		return nil, err
	}
	return s.repo.ListSubscribers(ctx)
}

// ImportSubscribers bulk-adds addresses collected elsewhere. Entries without
// names or email are skipped, and so are duplicates within the batch.
func (s *NewsletterService) ImportSubscribers(ctx context.Context, actor models.Actor, inputs []models.SubscriberInput) (int, error) {
	if err := actor.RequirePrivileged("import newsletter subscribers"); err != nil {
		return 0, err
	}
	if len(inputs) == 0 {
		return 0, models.BadRequest("no subscribers to import")
	}

	seen := make(map[string]bool, len(inputs))
	subscribers := make([]models.Subscriber, 0, len(inputs))
	for _, in := range inputs {
		if !in.Complete() {
			continue
		}
		subscriber, err := s.newSubscriber(in)
		if err != nil {
			return 0, err
		}
		if seen[subscriber.Email] {
			continue
		}
		seen[subscriber.Email] = true
		subscribers = append(subscribers, subscriber)
	}
	if len(subscribers) == 0 {
		return 0, nil
	}

	imported, err := s.repo.ImportSubscribers(ctx, subscribers)
	if err != nil {
		return 0, err
	}
	metrics.NewsletterSubscriptionsTotal.WithLabelValues("imported").Add(float64(imported))
	return imported, nil
}
