package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/partnerhub/backend/internal/handlers"
	mW "github.com/partnerhub/backend/internal/middleware"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *app {
	return &app{
		bids:          handlers.NewBidHandler(nil),
		accounts:      handlers.NewAccountHandler(nil, nil, nil),
		subscriptions: handlers.NewSubscriptionHandler(nil),
		admin:         handlers.NewAdminHandler(nil, nil),
		limiter:       mW.NewRateLimiter(100, 100),
	}
}

func TestRoutes_Public(t *testing.T) {
	h := testApp().routes()

	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRoutes_RequireAuth(t *testing.T) {
	h := testApp().routes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/partners/p1/balance", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_AdminRequiresRole(t *testing.T) {
	viper.Set("jwt.secret_key", "route-secret")
	t.Cleanup(viper.Reset)

	token, err := mW.IssueToken("p1", mW.RolePartner, time.Hour, []byte("route-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/settlements", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	testApp().routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
