package services

import (
	"context"
	"strings"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

type DonationRepository interface {
	GetDonation(ctx context.Context) (models.Donation, error)
	CreateDonation(ctx context.Context, donation *models.Donation) error
	UpdateDonation(ctx context.Context, assignments map[string]any) (models.Donation, error)
	DeleteDonation(ctx context.Context) error
}

type DonationService struct {
	repo DonationRepository
}

func NewDonationService(repo DonationRepository) *DonationService {
	return &DonationService{repo: repo}
}

func (s *DonationService) GetDonation(ctx context.Context) (models.Donation, error) {
	return s.repo.GetDonation(ctx)
}

func (s *DonationService) CreateDonation(ctx context.Context, actor models.Actor, donation models.Donation) (models.Donation, error) {
	if err := actor.RequirePrivileged("create donation details"); err != nil {
		return models.Donation{}, err
	}
	if strings.TrimSpace(donation.IBAN) == "" || strings.TrimSpace(donation.Bank) == "" {
		return models.Donation{}, models.BadRequest("iban and bank are required")
	}
	if err := s.repo.CreateDonation(ctx, &donation); err != nil {
		return models.Donation{}, err
	}
	return donation, nil
}

func (s *DonationService) UpdateDonation(ctx context.Context, actor models.Actor, patch models.DonationPatch) (models.Donation, error) {
	if err := actor.RequirePrivileged("update donation details"); err != nil {
		return models.Donation{}, err
	}
	if patch.IBAN.Valid && strings.TrimSpace(patch.IBAN.String) == "" {
		return models.Donation{}, models.BadRequest("iban must not be empty")
	}
	if patch.Bank.Valid && strings.TrimSpace(patch.Bank.String) == "" {
		return models.Donation{}, models.BadRequest("bank must not be empty")
	}
	return s.repo.UpdateDonation(ctx, patch.Assignments())
}

func (s *DonationService) DeleteDonation(ctx context.Context, actor models.Actor) error {
	if err := actor.RequirePrivileged("delete donation details"); err != nil {
		return err
	}
	return s.repo.DeleteDonation(ctx)
}
