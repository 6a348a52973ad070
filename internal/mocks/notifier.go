package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type AnfrageNotifier struct {
	mock.Mock
}

func (n *AnfrageNotifier) NotifyAnfrage(ctx context.Context, anfrage models.Anfrage) error {
	args := n.Called(anfrage)
	return args.Error(0)
}

type NewsletterSender struct {
	mock.Mock
}

func (n *NewsletterSender) SendNewsletter(ctx context.Context, newsletter models.Newsletter, subscribers []models.Subscriber) error {
	args := n.Called(newsletter, subscribers)
	return args.Error(0)
}
