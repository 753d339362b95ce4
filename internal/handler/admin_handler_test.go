package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/exam-api/internal/config"
	"github.com/yourusername/exam-api/internal/service"
)

func newAdminHandler(tokenURL, usersURL string) *AdminHandler {
	cfg := config.IdentityConfig{
		TokenURL: tokenURL,
		UsersURL: usersURL,
		ClientID: "exam-api",
		Username: "service-admin",
		Password: "secret",
		Demo: config.IdentityDemoUser{
			Username: "demo",
			Email:    "demo@example.com",
			Password: "demo-pass",
		},
	}
	return NewAdminHandler(service.NewIdentityService(cfg))
}

func TestAdminBootstrap_Success(t *testing.T) {
	// Arrange: identity-провайдер выдает токен и принимает пользователя
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.Write([]byte(`{"access_token":"t"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	handler := newAdminHandler(srv.URL+"/token", srv.URL+"/users")
	c, w := newTestGinContext("GET", "/admin", nil)

	// Act
	handler.Bootstrap(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["message"], "registered")
}

func TestAdminBootstrap_ProviderFailure(t *testing.T) {
	// Arrange: token endpoint недоступен логически (500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	handler := newAdminHandler(srv.URL+"/token", srv.URL+"/users")
	c, w := newTestGinContext("GET", "/admin", nil)

	// Act
	handler.Bootstrap(c)

	// Assert: ошибка внешнего вызова видна клиенту
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["error"], "status=500")
}
