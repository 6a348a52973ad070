package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

func TestCreateAnfrageHandler(t *testing.T) {
	env := newTestEnv(t)
	env.anfragen.On("CreateAnfrage", models.Anfrage{Name: "Lea", Email: "lea@example.ch", Message: "Hallo"}).Return(uint(5), nil)

	w := env.do(http.MethodPost, "/api/anfragen", map[string]any{
		"name": "Lea", "email": "lea@example.ch", "nachricht": "Hallo",
	}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 5.0, decode[map[string]any](t, w)["anfrageId"])
}

func TestCreateAnfrageHandlerValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []map[string]any{
		{"name": "Lea", "email": "not-an-email", "nachricht": "Hallo"},
		{"name": "Lea", "email": "lea@example.ch"},
		{},
	} {
		w := env.do(http.MethodPost, "/api/anfragen", body, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	env.anfragen.AssertNotCalled(t, "CreateAnfrage", mock.Anything)
}

func TestReadAnfragenHandlers(t *testing.T) {
	env := newTestEnv(t)
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	env.anfragen.On("ListAnfragen", boardActor).Return([]models.Anfrage{
		{ID: 1, Name: "Lea", Email: "lea@example.ch", Message: "Hallo", CreatedAt: created},
	}, nil)
	env.anfragen.On("GetAnfrage", boardActor, uint(2)).Return(models.Anfrage{}, models.NotFound("inquiry %d not found", 2))

	w := env.do(http.MethodGet, "/api/anfragen", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Lea","email":"lea@example.ch","nachricht":"Hallo","erstellt_am":"2025-05-01T10:00:00Z"}]`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/anfragen/2", nil, true).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/anfragen", nil, false).Code)
}
