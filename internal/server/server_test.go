package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jugehoerig/vereinsapi/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:         "0",
		Environment:  "test",
		MaxBodyBytes: 1 << 10,
		Auth: config.AuthConfig{
			JWTSecret: "server-test-secret",
			JWTExpiry: time.Hour,
			JWTIssuer: "vereinsapi",
		},
	}
}

// unreachableDB returns a handle whose pool never connects; routes that are
// rejected before touching storage can still be exercised.
func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgres.Open("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1"),
		&gorm.Config{DisableAutomaticPing: true, Logger: logger.Discard},
	)
	require.NoError(t, err)
	return db
}

func TestRouterGuardsPrivilegedRoutes(t *testing.T) {
	r := NewRouter(testConfig(), zerolog.Nop(), unreachableDB(t), nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/events"},
		{http.MethodPut, "/api/events/1"},
		{http.MethodDelete, "/api/events/1"},
		{http.MethodPost, "/api/events/1/formular"},
		{http.MethodGet, "/api/events/1/anmeldungen"},
		{http.MethodPost, "/api/events/1/anmeldungen"},
		{http.MethodPost, "/api/spenden"},
		{http.MethodPut, "/api/spenden"},
		{http.MethodDelete, "/api/spenden"},
		{http.MethodGet, "/api/anfragen"},
		{http.MethodGet, "/api/anfragen/1"},
		{http.MethodPost, "/api/newsletter"},
		{http.MethodPost, "/api/newsletter/1/versand"},
		{http.MethodGet, "/api/newsletter/subscribers"},
		{http.MethodPost, "/api/newsletter/subscribers/import"},
		{http.MethodPost, "/api/vorstand"},
		{http.MethodGet, "/api/vorstand/logins"},
		{http.MethodGet, "/api/vorstand/me"},
		{http.MethodPut, "/api/vorstand/me"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.method+" "+route.path)

		w = httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer forged.token.value")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, route.method+" "+route.path)
	}
}

func TestRouterLimitsBodySize(t *testing.T) {
	r := NewRouter(testConfig(), zerolog.Nop(), unreachableDB(t), nil)

	body := []byte(`{"daten":{"bemerkung":"` + strings.Repeat("a", 4<<10) + `"}}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events/1/anmeldung", bytes.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	r := NewRouter(testConfig(), zerolog.Nop(), unreachableDB(t), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "https://verein.ch")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthzReportsUnavailableDatabase(t *testing.T) {
	r := NewRouter(testConfig(), zerolog.Nop(), unreachableDB(t), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(testConfig(), zerolog.Nop(), unreachableDB(t), nil)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/events/x", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vereinsapi_http_requests_total")
}
