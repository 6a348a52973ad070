package services

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jugehoerig/vereinsapi/internal/mocks"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

func TestCreateDonation(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewDonationService(repo)
	ctx := context.Background()

	_, err := svc.CreateDonation(ctx, member, models.Donation{IBAN: "CH93", Bank: "Raiffeisen"})
	assert.True(t, errors.Is(err, models.ErrForbidden))

	_, err = svc.CreateDonation(ctx, admin, models.Donation{IBAN: "CH93"})
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	repo.On("CreateDonation", mock.Anything).Return(nil)
	donation, err := svc.CreateDonation(ctx, admin, models.Donation{IBAN: "CH93", Bank: "Raiffeisen"})
	require.NoError(t, err)
	assert.Equal(t, "Raiffeisen", donation.Bank)
}

func TestUpdateDonation(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewDonationService(repo)
	ctx := context.Background()

	_, err := svc.UpdateDonation(ctx, board, models.DonationPatch{IBAN: null.StringFrom("")})
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	repo.On("UpdateDonation", map[string]any{"bank": "PostFinance"}).
		Return(models.Donation{ID: 1, IBAN: "CH93", Bank: "PostFinance"}, nil)
	donation, err := svc.UpdateDonation(ctx, board, models.DonationPatch{Bank: null.StringFrom("PostFinance")})
	require.NoError(t, err)
	assert.Equal(t, "PostFinance", donation.Bank)
}

func TestDeleteDonation(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewDonationService(repo)

	assert.True(t, errors.Is(svc.DeleteDonation(context.Background(), member), models.ErrForbidden))

	repo.On("DeleteDonation").Return(models.NotFound("no donation details stored"))
	assert.True(t, errors.Is(svc.DeleteDonation(context.Background(), admin), models.ErrNotFound))
}
