package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/gridiron/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(v *token.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(v), func(c *gin.Context) {
		uid, err := GetUserIDFromContext(c)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, uid)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	v := token.NewVerifier("secret", "https://auth.example.com", "authenticated")
	r := newAuthRouter(v)

	valid, err := v.Issue("8f14e45f-ceea-467f-a0e6-3f1bdc4a2b11", "coach@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := v.Issue("u1", "", -time.Minute)
	require.NoError(t, err)
	otherKey, err := token.NewVerifier("other", "https://auth.example.com", "authenticated").Issue("u1", "", time.Hour)
	require.NoError(t, err)
	otherAudience, err := token.NewVerifier("secret", "https://auth.example.com", "service_role").Issue("u1", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{name: "valid", header: "Bearer " + valid, code: http.StatusOK, body: "8f14e45f-ceea-467f-a0e6-3f1bdc4a2b11"},
		{name: "missing header", header: "", code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + valid, code: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, code: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + otherKey, code: http.StatusUnauthorized},
		{name: "wrong audience", header: "Bearer " + otherAudience, code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := GetUserIDFromContext(c)
	assert.Error(t, err)

	c.Set(AuthUserIDKey, 42)
	_, err = GetUserIDFromContext(c)
	assert.Error(t, err)
}
