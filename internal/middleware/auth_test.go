package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func callerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Partner", PartnerIDFromContext(r.Context()))
		w.Header().Set("X-Role", RoleFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	viper.Set("jwt.secret_key", testSecret)
	t.Cleanup(viper.Reset)

	valid, err := IssueToken("partner-1", RolePartner, time.Hour, []byte(testSecret))
	require.NoError(t, err)
	expired, err := IssueToken("partner-1", RolePartner, -time.Hour, []byte(testSecret))
	require.NoError(t, err)
	foreign, err := IssueToken("partner-1", RolePartner, time.Hour, []byte("other-secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		partner string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong key", "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"valid", "Bearer " + valid, http.StatusNoContent, "partner-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/partners/partner-1/balance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			AuthMiddleware(callerEcho()).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.partner, w.Header().Get("X-Partner"))
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"unauthenticated"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(RoleAdmin)(callerEcho())

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/settlements/2026-10-19", nil)
		req = req.WithContext(WithCaller(req.Context(), "", RoleAdmin))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("partner is denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/settlements/2026-10-19", nil)
		req = req.WithContext(WithCaller(req.Context(), "partner-1", RolePartner))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestValidateToken_AdminWithoutPartner(t *testing.T) {
	token, err := IssueToken("", RoleAdmin, time.Hour, []byte(testSecret))
	require.NoError(t, err)

	claims, err := ValidateToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	token, err = IssueToken("", RolePartner, time.Hour, []byte(testSecret))
	require.NoError(t, err)
	_, err = ValidateToken(token, []byte(testSecret))
	assert.Error(t, err)
}
