package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type EventService struct {
	mock.Mock
}

func (s *EventService) CreateEvent(ctx context.Context, actor models.Actor, input models.EventInput) (uint, error) {
	args := s.Called(actor, input)
	return args.Get(0).(uint), args.Error(1)
}

func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := s.Called()
	return args.Get(0).([]models.Event), args.Error(1)
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (models.Event, error) {
	args := s.Called(id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (s *EventService) UpdateEvent(ctx context.Context, actor models.Actor, id uint, patch models.EventPatch) error {
	args := s.Called(actor, id, patch)
	return args.Error(0)
}

func (s *EventService) DeleteEvent(ctx context.Context, actor models.Actor, id uint) error {
	args := s.Called(actor, id)
	return args.Error(0)
}

func (s *EventService) NextEventID(ctx context.Context) (int64, error) {
	args := s.Called()
	return args.Get(0).(int64), args.Error(1)
}

type FormService struct {
	mock.Mock
}

func (s *FormService) SetFormSchema(ctx context.Context, actor models.Actor, eventID uint, inputs []models.FormFieldInput) error {
	args := s.Called(actor, eventID, inputs)
	return args.Error(0)
}

func (s *FormService) GetFormSchema(ctx context.Context, eventID uint) ([]models.FormField, error) {
	args := s.Called(eventID)
	return args.Get(0).([]models.FormField), args.Error(1)
}

type RegistrationService struct {
	mock.Mock
}

func (s *RegistrationService) Register(ctx context.Context, eventID uint, data map[string]any) (uint, error) {
	args := s.Called(eventID, data)
	return args.Get(0).(uint), args.Error(1)
}

func (s *RegistrationService) AddManualRegistration(ctx context.Context, actor models.Actor, eventID uint, data map[string]any) (uint, error) {
	args := s.Called(actor, eventID, data)
	return args.Get(0).(uint), args.Error(1)
}

func (s *RegistrationService) ListRegistrations(ctx context.Context, actor models.Actor, eventID uint) (models.RegistrationListing, error) {
	args := s.Called(actor, eventID)
	return args.Get(0).(models.RegistrationListing), args.Error(1)
}

type DonationService struct {
	mock.Mock
}

func (s *DonationService) GetDonation(ctx context.Context) (models.Donation, error) {
	args := s.Called()
	return args.Get(0).(models.Donation), args.Error(1)
}

func (s *DonationService) CreateDonation(ctx context.Context, actor models.Actor, donation models.Donation) (models.Donation, error) {
	args := s.Called(actor, donation)
	return args.Get(0).(models.Donation), args.Error(1)
}

func (s *DonationService) UpdateDonation(ctx context.Context, actor models.Actor, patch models.DonationPatch) (models.Donation, error) {
	args := s.Called(actor, patch)
	return args.Get(0).(models.Donation), args.Error(1)
}

func (s *DonationService) DeleteDonation(ctx context.Context, actor models.Actor) error {
	args := s.Called(actor)
	return args.Error(0)
}

type AnfrageService struct {
	mock.Mock
}

func (s *AnfrageService) CreateAnfrage(ctx context.Context, anfrage models.Anfrage) (uint, error) {
	args := s.Called(anfrage)
	return args.Get(0).(uint), args.Error(1)
}

func (s *AnfrageService) ListAnfragen(ctx context.Context, actor models.Actor) ([]models.Anfrage, error) {
	args := s.Called(actor)
	return args.Get(0).([]models.Anfrage), args.Error(1)
}

func (s *AnfrageService) GetAnfrage(ctx context.Context, actor models.Actor, id uint) (models.Anfrage, error) {
	args := s.Called(actor, id)
	return args.Get(0).(models.Anfrage), args.Error(1)
}

type NewsletterService struct {
	mock.Mock
}

func (s *NewsletterService) CreateNewsletter(ctx context.Context, actor models.Actor, input models.NewsletterInput) (uint, error) {
	args := s.Called(actor, input)
	return args.Get(0).(uint), args.Error(1)
}

func (s *NewsletterService) ListNewsletters(ctx context.Context) ([]models.Newsletter, error) {
	args := s.Called()
	return args.Get(0).([]models.Newsletter), args.Error(1)
}

func (s *NewsletterService) GetNewsletter(ctx context.Context, id uint) (models.Newsletter, error) {
	args := s.Called(id)
	return args.Get(0).(models.Newsletter), args.Error(1)
}

func (s *NewsletterService) SendNewsletter(ctx context.Context, actor models.Actor, id uint) (int, error) {
	args := s.Called(actor, id)
	return args.Int(0), args.Error(1)
}

func (s *NewsletterService) Subscribe(ctx context.Context, input models.SubscriberInput) (bool, error) {
	args := s.Called(input)
	return args.Bool(0), args.Error(1)
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) error {
	args := s.Called(token)
	return args.Error(0)
}

func (s *NewsletterService) ListSubscribers(ctx context.Context, actor models.Actor) ([]models.Subscriber, error) {
	args := s.Called(actor)
	return args.Get(0).([]models.Subscriber), args.Error(1)
}

func (s *NewsletterService) ImportSubscribers(ctx context.Context, actor models.Actor, inputs []models.SubscriberInput) (int, error) {
	args := s.Called(actor, inputs)
	return args.Int(0), args.Error(1)
}

type BoardService struct {
	mock.Mock
}

func (s *BoardService) CreateBoardMember(ctx context.Context, actor models.Actor, member models.BoardMember) (uint, error) {
	args := s.Called(actor, member)
	return args.Get(0).(uint), args.Error(1)
}

func (s *BoardService) ListBoardMembers(ctx context.Context) ([]models.BoardMember, error) {
	args := s.Called()
	return args.Get(0).([]models.BoardMember), args.Error(1)
}

func (s *BoardService) ListBoardLogins(ctx context.Context, actor models.Actor) ([]models.BoardMember, error) {
	args := s.Called(actor)
	return args.Get(0).([]models.BoardMember), args.Error(1)
}

func (s *BoardService) GetMyProfile(ctx context.Context, actor models.Actor) (models.BoardProfile, error) {
	args := s.Called(actor)
	return args.Get(0).(models.BoardProfile), args.Error(1)
}

func (s *BoardService) UpdateMyProfile(ctx context.Context, actor models.Actor, patch models.BoardMemberPatch) (models.BoardMember, error) {
	args := s.Called(actor, patch)
	return args.Get(0).(models.BoardMember), args.Error(1)
}
