package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

// Repository mocks every store method of repository.Repository.
type Repository struct {
	mock.Mock
}

func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	args := r.Called(event)
	return args.Error(0)
}

func (r *Repository) ExpireEvents(ctx context.Context, now time.Time) error {
	args := r.Called(now)
	return args.Error(0)
}

func (r *Repository) ExpireEvent(ctx context.Context, id uint, now time.Time) error {
	args := r.Called(id, now)
	return args.Error(0)
}

func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := r.Called()
	return args.Get(0).([]models.Event), args.Error(1)
}

func (r *Repository) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	args := r.Called(id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (r *Repository) EventExists(ctx context.Context, id uint) (bool, error) {
	args := r.Called(id)
	return args.Bool(0), args.Error(1)
}

func (r *Repository) UpdateEvent(ctx context.Context, id uint, update models.EventUpdate) error {
	args := r.Called(id, update)
	return args.Error(0)
}

func (r *Repository) DeleteEvent(ctx context.Context, id uint) error {
	args := r.Called(id)
	return args.Error(0)
}

func (r *Repository) NextEventID(ctx context.Context) (int64, error) {
	args := r.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (r *Repository) ReplaceFormFields(ctx context.Context, eventID uint, fields []models.FormField) error {
	args := r.Called(eventID, fields)
	return args.Error(0)
}

func (r *Repository) ListFormFields(ctx context.Context, eventID uint) ([]models.FormField, error) {
	args := r.Called(eventID)
	return args.Get(0).([]models.FormField), args.Error(1)
}

func (r *Repository) CreateRegistration(ctx context.Context, registration *models.Registration) error {
	args := r.Called(registration)
	return args.Error(0)
}

func (r *Repository) ListRegistrations(ctx context.Context, eventID uint) ([]models.Registration, error) {
	args := r.Called(eventID)
	return args.Get(0).([]models.Registration), args.Error(1)
}

func (r *Repository) GetDonation(ctx context.Context) (models.Donation, error) {
	args := r.Called()
	return args.Get(0).(models.Donation), args.Error(1)
}

func (r *Repository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	args := r.Called(donation)
	return args.Error(0)
}

func (r *Repository) UpdateDonation(ctx context.Context, assignments map[string]any) (models.Donation, error) {
	args := r.Called(assignments)
	return args.Get(0).(models.Donation), args.Error(1)
}

func (r *Repository) DeleteDonation(ctx context.Context) error {
	args := r.Called()
	return args.Error(0)
}

func (r *Repository) CreateAnfrage(ctx context.Context, anfrage *models.Anfrage) error {
	args := r.Called(anfrage)
	return args.Error(0)
}

func (r *Repository) ListAnfragen(ctx context.Context) ([]models.Anfrage, error) {
	args := r.Called()
	return args.Get(0).([]models.Anfrage), args.Error(1)
}

func (r *Repository) GetAnfrage(ctx context.Context, id uint) (models.Anfrage, error) {
	args := r.Called(id)
	return args.Get(0).(models.Anfrage), args.Error(1)
}

func (r *Repository) CreateNewsletter(ctx context.Context, newsletter *models.Newsletter) error {
	args := r.Called(newsletter)
	return args.Error(0)
}

func (r *Repository) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	args := r.Called()
	return args.Get(0).([]models.Newsletter), args.Error(1)
}

func (r *Repository) GetNewsletter(ctx context.Context, id uint) (models.Newsletter, error) {
	args := r.Called(id)
	return args.Get(0).(models.Newsletter), args.Error(1)
}

func (r *Repository) MarkNewsletterSent(ctx context.Context, id uint, at time.Time) error {
	args := r.Called(id, at)
	return args.Error(0)
}

func (r *Repository) UpsertSubscriber(ctx context.Context, subscriber *models.Subscriber) (bool, error) {
	args := r.Called(subscriber)
	return args.Bool(0), args.Error(1)
}

func (r *Repository) GetSubscriberByToken(ctx context.Context, token string) (models.Subscriber, error) {
	args := r.Called(token)
	return args.Get(0).(models.Subscriber), args.Error(1)
}

func (r *Repository) UnsubscribeSubscriber(ctx context.Context, id uint, at time.Time) error {
	args := r.Called(id, at)
	return args.Error(0)
}

func (r *Repository) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	args := r.Called()
	return args.Get(0).([]models.Subscriber), args.Error(1)
}

func (r *Repository) ListActiveSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	args := r.Called()
	return args.Get(0).([]models.Subscriber), args.Error(1)
}

func (r *Repository) ImportSubscribers(ctx context.Context, subscribers []models.Subscriber) (int, error) {
	args := r.Called(subscribers)
	return args.Int(0), args.Error(1)
}

func (r *Repository) CreateBoardMember(ctx context.Context, member *models.BoardMember) error {
	args := r.Called(member)
	return args.Error(0)
}

func (r *Repository) ListBoardMembers(ctx context.Context) ([]models.BoardMember, error) {
	args := r.Called()
	return args.Get(0).([]models.BoardMember), args.Error(1)
}

func (r *Repository) FindBoardMember(ctx context.Context, id int64, username string) (models.BoardMember, error) {
	args := r.Called(id, username)
	return args.Get(0).(models.BoardMember), args.Error(1)
}

func (r *Repository) UpdateBoardMember(ctx context.Context, id uint, assignments map[string]any) (models.BoardMember, error) {
	args := r.Called(id, assignments)
	return args.Get(0).(models.BoardMember), args.Error(1)
}
