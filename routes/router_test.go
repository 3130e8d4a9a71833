package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/gridiron/config"
	"github.com/DhavalSuthar-24/gridiron/internal/formation"
	"github.com/DhavalSuthar-24/gridiron/internal/session"
)

// Repositories only touch the handle per query, so routes that never reach
// storage can be exercised without a database.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.FrontendURL = "http://localhost:3000"
	cfg.JWT.Secret = "router-secret"

	store, err := session.NewStore(100, time.Minute)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return SetupRoutes(cfg, nil, formation.Default(), store)
}

func TestSetupRoutes(t *testing.T) {
	r := newTestEngine(t)

	tests := []struct {
		name   string
		method string
		path   string
		header map[string]string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "formations are public", method: http.MethodGet, path: "/api/formations?odk=offense", want: http.StatusOK},
		{name: "plays need a token", method: http.MethodGet, path: "/api/plays", want: http.StatusUnauthorized},
		{name: "editor needs a token", method: http.MethodPost, path: "/api/editor/sessions", want: http.StatusUnauthorized},
		{name: "film needs a token", method: http.MethodGet, path: "/api/games?team_id=1", want: http.StatusUnauthorized},
		{
			name:   "garbage token",
			method: http.MethodGet,
			path:   "/api/users/me/teams",
			header: map[string]string{"Authorization": "Bearer nope"},
			want:   http.StatusUnauthorized,
		},
		{name: "unknown route", method: http.MethodGet, path: "/api/nothing", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSetupRoutes_CORS(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/plays", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
