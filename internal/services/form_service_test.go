package services

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jugehoerig/vereinsapi/internal/mocks"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

func TestSetFormSchema(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewFormService(repo)

	repo.On("EventExists", uint(2)).Return(true, nil)
	repo.On("ReplaceFormFields", uint(2), mock.MatchedBy(func(fields []models.FormField) bool {
		return len(fields) == 2 && fields[0].Name == "vorname" && fields[1].Type == models.FieldTypeSelect
	})).Return(nil)

	err := svc.SetFormSchema(context.Background(), board, 2, []models.FormFieldInput{
		{Name: "vorname", Type: "text", Required: true},
		{Name: "menu", Type: "select", Options: []string{"Fleisch", "Vegi"}},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSetFormSchemaEmptyClears(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewFormService(repo)

	repo.On("EventExists", uint(2)).Return(true, nil)
	repo.On("ReplaceFormFields", uint(2), []models.FormField{}).Return(nil)

	require.NoError(t, svc.SetFormSchema(context.Background(), admin, 2, []models.FormFieldInput{}))
	repo.AssertExpectations(t)
}

func TestSetFormSchemaRejects(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewFormService(repo)
	ctx := context.Background()

	err := svc.SetFormSchema(ctx, member, 2, []models.FormFieldInput{})
	assert.True(t, errors.Is(err, models.ErrForbidden))

	err = svc.SetFormSchema(ctx, admin, 2, nil)
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	err = svc.SetFormSchema(ctx, admin, 2, []models.FormFieldInput{{Name: ""}})
	assert.True(t, errors.Is(err, models.ErrBadRequest))

	repo.On("EventExists", uint(404)).Return(false, nil)
	err = svc.SetFormSchema(ctx, admin, 404, []models.FormFieldInput{{Name: "email"}})
	assert.True(t, errors.Is(err, models.ErrNotFound))

	repo.AssertNotCalled(t, "ReplaceFormFields", mock.Anything, mock.Anything)
}

func TestGetFormSchema(t *testing.T) {
	repo := new(mocks.Repository)
	svc := NewFormService(repo)
	repo.On("ListFormFields", uint(8)).Return([]models.FormField{}, nil)

	fields, err := svc.GetFormSchema(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, fields)
}
