package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)
	env.registrations.On("Register", uint(1), map[string]any{"vorname": "Anna", "anzahl": json.Number("2")}).Return(uint(9), nil)

	w := env.do(http.MethodPost, "/api/events/1/anmeldung", map[string]any{
		"daten": map[string]any{"vorname": "Anna", "anzahl": 2},
	}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 9.0, decode[map[string]any](t, w)["registrationId"])
}

func TestRegisterHandlerKeepsLargeIntegers(t *testing.T) {
	env := newTestEnv(t)
	env.registrations.On("Register", uint(1), map[string]any{"nr": json.Number("12345678901234567")}).Return(uint(4), nil)

	w := env.do(http.MethodPost, "/api/events/1/anmeldung", `{"daten":{"nr":12345678901234567}}`, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env.registrations.AssertExpectations(t)
}

func TestRegisterHandlerRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/events/1/anmeldung", `{"daten":`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.registrations.Calls)
}

func TestRegisterHandlerRejectsNonObject(t *testing.T) {
	env := newTestEnv(t)
	env.registrations.On("Register", uint(1), map[string]any(nil)).
		Return(uint(0), models.BadRequest("registration data must be an object"))

	w := env.do(http.MethodPost, "/api/events/1/anmeldung", map[string]any{"daten": "Anna"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/events/1/anmeldung", map[string]any{}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandlerMissingField(t *testing.T) {
	env := newTestEnv(t)
	env.registrations.On("Register", uint(1), map[string]any{"vorname": "Anna"}).
		Return(uint(0), models.BadRequest("missing required field: %s", "email"))

	w := env.do(http.MethodPost, "/api/events/1/anmeldung", map[string]any{
		"daten": map[string]any{"vorname": "Anna"},
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required field: email", decode[map[string]any](t, w)["message"])
}

func TestAddManualRegistrationHandler(t *testing.T) {
	env := newTestEnv(t)
	env.registrations.On("AddManualRegistration", boardActor, uint(1), map[string]any{"vorname": "Ben"}).Return(uint(3), nil)

	w := env.do(http.MethodPost, "/api/events/1/anmeldungen", map[string]any{
		"daten": map[string]any{"vorname": "Ben"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/api/events/1/anmeldungen", map[string]any{"daten": map[string]any{}}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRegistrationsHandler(t *testing.T) {
	env := newTestEnv(t)
	created := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	env.registrations.On("ListRegistrations", boardActor, uint(1)).Return(models.RegistrationListing{
		Fields: []string{"email"},
		Registrations: []models.ProjectedRegistration{
			{ID: 2, Data: map[string]any{"email": "a@example.ch"}, CreatedAt: created},
		},
	}, nil)
	env.registrations.On("ListRegistrations", boardActor, uint(2)).Return(models.RegistrationListing{}, nil)

	w := env.do(http.MethodGet, "/api/events/1/anmeldungen", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"fields": ["email"],
		"registrations": [{"id": 2, "daten": {"email": "a@example.ch"}, "created_at": "2025-05-02T09:00:00Z"}]
	}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/events/2/anmeldungen", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fields": [], "registrations": []}`, w.Body.String())
}
