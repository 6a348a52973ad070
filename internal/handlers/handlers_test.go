package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jugehoerig/vereinsapi/internal/auth"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/mocks"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

var boardActor = models.Actor{ID: 1, Username: "praesident", Roles: []string{models.RoleVorstand}}

type testEnv struct {
	router        *gin.Engine
	token         string
	events        *mocks.EventService
	forms         *mocks.FormService
	registrations *mocks.RegistrationService
	donations     *mocks.DonationService
	anfragen      *mocks.AnfrageService
	newsletters   *mocks.NewsletterService
	board         *mocks.BoardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := auth.NewJWTManager("handler-test-secret", time.Hour, "vereinsapi")
	token, err := manager.Generate(boardActor)
	require.NoError(t, err)

	env := &testEnv{
		router:        gin.New(),
		token:         token,
		events:        new(mocks.EventService),
		forms:         new(mocks.FormService),
		registrations: new(mocks.RegistrationService),
		donations:     new(mocks.DonationService),
		anfragen:      new(mocks.AnfrageService),
		newsletters:   new(mocks.NewsletterService),
		board:         new(mocks.BoardService),
	}

	eventHandler := NewEventHandler(env.events)
	formHandler := NewFormHandler(env.forms)
	registrationHandler := NewRegistrationHandler(env.registrations)
	donationHandler := NewDonationHandler(env.donations)
	anfrageHandler := NewAnfrageHandler(env.anfragen)
	newsletterHandler := NewNewsletterHandler(env.newsletters)
	boardHandler := NewBoardHandler(env.board)
	guard := middleware.JWTAuthMiddleware(manager)

	api := env.router.Group("/api")
	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/next-id", eventHandler.NextEventID)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.POST("/events", guard, eventHandler.CreateEvent)
	api.PUT("/events/:id", guard, eventHandler.UpdateEvent)
	api.DELETE("/events/:id", guard, eventHandler.DeleteEvent)
	api.GET("/events/:id/formular", formHandler.GetFormSchema)
	api.POST("/events/:id/formular", guard, formHandler.SetFormSchema)
	api.POST("/events/:id/anmeldung", registrationHandler.Register)
	api.GET("/events/:id/anmeldungen", guard, registrationHandler.ListRegistrations)
	api.POST("/events/:id/anmeldungen", guard, registrationHandler.AddManualRegistration)
	api.GET("/spenden", donationHandler.GetDonation)
	api.POST("/spenden", guard, donationHandler.CreateDonation)
	api.PUT("/spenden", guard, donationHandler.UpdateDonation)
	api.DELETE("/spenden", guard, donationHandler.DeleteDonation)
	api.POST("/anfragen", anfrageHandler.CreateAnfrage)
	api.GET("/anfragen", guard, anfrageHandler.ListAnfragen)
	api.GET("/anfragen/:id", guard, anfrageHandler.GetAnfrage)
	api.GET("/newsletter", newsletterHandler.ListNewsletters)
	api.GET("/newsletter/:id", newsletterHandler.GetNewsletter)
	api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
	api.GET("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)
	api.POST("/newsletter", guard, newsletterHandler.CreateNewsletter)
	api.POST("/newsletter/:id/versand", guard, newsletterHandler.SendNewsletter)
	api.GET("/newsletter/subscribers", guard, newsletterHandler.ListSubscribers)
	api.POST("/newsletter/subscribers/import", guard, newsletterHandler.ImportSubscribers)
	api.GET("/vorstand", boardHandler.ListBoardMembers)
	api.GET("/vorstand/fotos", boardHandler.ListBoardPhotos)
	api.POST("/vorstand", guard, boardHandler.CreateBoardMember)
	api.GET("/vorstand/logins", guard, boardHandler.ListBoardLogins)
	api.GET("/vorstand/me", guard, boardHandler.GetMyProfile)
	api.PUT("/vorstand/me", guard, boardHandler.UpdateMyProfile)

	return env
}

// do sends body as JSON; a string body is sent verbatim.
func (e *testEnv) do(method, path string, body any, authenticated bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
