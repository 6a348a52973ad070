package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jugehoerig/vereinsapi/internal/mocks"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

func newTestNewsletterService(repo *mocks.Repository, sender NewsletterSender) *NewsletterService {
	svc := NewNewsletterService(repo, sender)
	svc.now = fixedClock
	svc.token = func() (string, error) { return "feedface", nil }
	return svc
}

func tinyPNGDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNewUnsubscribeToken(t *testing.T) {
	first, err := newUnsubscribeToken()
	require.NoError(t, err)
	second, err := newUnsubscribeToken()
	require.NoError(t, err)

	assert.Len(t, first, 2*unsubscribeTokenBytes)
	assert.NotEqual(t, first, second)
}

func TestCreateNewsletter(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestNewsletterService(repo, nil)

	repo.On("CreateNewsletter", mock.MatchedBy(func(n *models.Newsletter) bool {
		return n.Title == "Herbst" &&
			n.SendDate.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) &&
			len(n.Sections) == 2 &&
			n.Sections[0].Subtitle == "Rückblick" && n.Sections[0].Image != nil &&
			n.Sections[1].Position == 1 && n.Sections[1].Image == nil
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Newsletter).ID = 7
	}).Return(nil)

	id, err := svc.CreateNewsletter(context.Background(), board, models.NewsletterInput{
		Title:    " Herbst ",
		SendDate: "2025-09-01",
		Sections: []models.SectionInput{
			{Subtitle: " Rückblick ", Text: "Sommerfest", Image: tinyPNGDataURI(t)},
			{Text: "Termine"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestCreateNewsletterRejects(t *testing.T) {
	valid := models.NewsletterInput{Title: "Herbst", SendDate: "2025-09-01", Sections: []models.SectionInput{{Text: "x"}}}

	cases := map[string]struct {
		actor models.Actor
		input func(models.NewsletterInput) models.NewsletterInput
		want  error
	}{
		"member":      {member, func(in models.NewsletterInput) models.NewsletterInput { return in }, models.ErrForbidden},
		"no title":    {board, func(in models.NewsletterInput) models.NewsletterInput { in.Title = " "; return in }, models.ErrBadRequest},
		"no sections": {board, func(in models.NewsletterInput) models.NewsletterInput { in.Sections = nil; return in }, models.ErrBadRequest},
		"bad date":    {board, func(in models.NewsletterInput) models.NewsletterInput { in.SendDate = "bald"; return in }, models.ErrBadRequest},
		"bad image": {board, func(in models.NewsletterInput) models.NewsletterInput {
			in.Sections = []models.SectionInput{{Image: "data:image/gif;base64,AAAA"}}
			return in
		}, models.ErrBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(mocks.Repository)
			svc := newTestNewsletterService(repo, nil)

			_, err := svc.CreateNewsletter(context.Background(), tc.actor, tc.input(valid))
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			repo.AssertNotCalled(t, "CreateNewsletter", mock.Anything)
		})
	}
}

func TestSubscribe(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestNewsletterService(repo, nil)

	repo.On("UpsertSubscriber", &models.Subscriber{
		FirstName:        "Lea",
		LastName:         "Muster",
		Email:            "lea@example.ch",
		UnsubscribeToken: "feedface",
		OptIn:            true,
		SubscribedAt:     fixedNow,
	}).Return(true, nil)

	reactivated, err := svc.Subscribe(context.Background(), models.SubscriberInput{
		FirstName: " Lea ", LastName: "Muster", Email: " Lea@Example.CH ", OptIn: true,
	})
	require.NoError(t, err)
	assert.True(t, reactivated)
}

func TestSubscribeRejects(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestNewsletterService(repo, nil)

	_, err := svc.Subscribe(context.Background(), models.SubscriberInput{FirstName: "Lea", LastName: "Muster", Email: "lea@example.ch"})
	assert.True(t, errors.Is(err, models.ErrBadRequest))
	assert.Contains(t, err.Error(), "opt-in")

	_, err = svc.Subscribe(context.Background(), models.SubscriberInput{FirstName: "Lea", Email: "lea@example.ch", OptIn: true})
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	repo.AssertNotCalled(t, "UpsertSubscriber", mock.Anything)
}

func TestUnsubscribe(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestNewsletterService(repo, nil)

	assert.True(t, errors.Is(svc.Unsubscribe(context.Background(), " "), models.ErrBadRequest))

	repo.On("GetSubscriberByToken", "unknown").Return(models.Subscriber{}, models.NotFound("unknown unsubscribe token"))
	assert.True(t, errors.Is(svc.Unsubscribe(context.Background(), "unknown"), models.ErrNotFound))

	gone := fixedNow.Add(-time.Hour)
	repo.On("GetSubscriberByToken", "gone").Return(models.Subscriber{ID: 2, UnsubscribedAt: &gone}, nil)
	assert.True(t, errors.Is(svc.Unsubscribe(context.Background(), "gone"), models.ErrBadRequest))

	repo.On("GetSubscriberByToken", "abc").Return(models.Subscriber{ID: 3}, nil)
	repo.On("UnsubscribeSubscriber", uint(3), fixedNow).Return(nil)
	require.NoError(t, svc.Unsubscribe(context.Background(), "abc"))
	repo.AssertCalled(t, "UnsubscribeSubscriber", uint(3), fixedNow)
	repo.AssertNotCalled(t, "UnsubscribeSubscriber", uint(2), mock.Anything)
}

func TestImportSubscribers(t *testing.T) {
	repo := new(mocks.Repository)
	svc := newTestNewsletterService(repo, nil)

	_, err := svc.ImportSubscribers(context.Background(), member, []models.SubscriberInput{{FirstName: "a"}})
	assert.True(t, errors.Is(err, models.ErrForbidden))
	_, err = svc.ImportSubscribers(context.Background(), board, nil)
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	repo.On("ImportSubscribers", mock.MatchedBy(func(subs []models.Subscriber) bool {
		return len(subs) == 2 && subs[0].Email == "ben@example.ch" && subs[1].Email == "eva@example.ch"
	})).Return(2, nil)

	imported, err := svc.ImportSubscribers(context.Background(), board, []models.SubscriberInput{
		{FirstName: "Ben", LastName: "Keller", Email: "Ben@Example.ch"},
		{FirstName: "Ohne", LastName: "Mail"},
		{FirstName: "Ben", LastName: "Keller", Email: "ben@example.ch"},
		{FirstName: "Eva", LastName: "Frei", Email: "eva@example.ch"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
}

func TestSendNewsletter(t *testing.T) {
	repo := new(mocks.Repository)
	sender := new(mocks.NewsletterSender)
	svc := newTestNewsletterService(repo, sender)

	newsletter := models.Newsletter{ID: 4, Title: "Herbst"}
	subscribers := []models.Subscriber{{ID: 1, Email: "a@example.ch"}, {ID: 2, Email: "b@example.ch"}}
	repo.On("GetNewsletter", uint(4)).Return(newsletter, nil)
	repo.On("ListActiveSubscribers").Return(subscribers, nil)
	sender.On("SendNewsletter", newsletter, subscribers).Return(nil)
	repo.On("MarkNewsletterSent", uint(4), fixedNow).Return(nil)

	recipients, err := svc.SendNewsletter(context.Background(), board, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, recipients)
	sender.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSendNewsletterAlreadySent(t *testing.T) {
	repo := new(mocks.Repository)
	sender := new(mocks.NewsletterSender)
	svc := newTestNewsletterService(repo, sender)

	sent := fixedNow.Add(-24 * time.Hour)
	repo.On("GetNewsletter", uint(4)).Return(models.Newsletter{ID: 4, SentAt: &sent}, nil)

	_, err := svc.SendNewsletter(context.Background(), board, 4)
	assert.True(t, errors.Is(err, models.ErrConflict))
	sender.AssertNotCalled(t, "SendNewsletter", mock.Anything, mock.Anything)
}

func TestSendNewsletterFailures(t *testing.T) {
	repo := new(mocks.Repository)
	sender := new(mocks.NewsletterSender)
	svc := newTestNewsletterService(repo, sender)

	_, err := svc.SendNewsletter(context.Background(), member, 4)
	assert.True(t, errors.Is(err, models.ErrForbidden))

	repo.On("GetNewsletter", uint(4)).Return(models.Newsletter{ID: 4}, nil)
	repo.On("ListActiveSubscribers").Return([]models.Subscriber{}, nil).Once()
	_, err = svc.SendNewsletter(context.Background(), board, 4)
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	repo.On("ListActiveSubscribers").Return([]models.Subscriber{{ID: 1}}, nil)
	sender.On("SendNewsletter", mock.Anything, mock.Anything).Return(errors.New("421 service not available"))
	_, err = svc.SendNewsletter(context.Background(), board, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "421")
	repo.AssertNotCalled(t, "MarkNewsletterSent", mock.Anything, mock.Anything)

	_, err = newTestNewsletterService(repo, nil).SendNewsletter(context.Background(), board, 4)
	assert.Error(t, err)
}
