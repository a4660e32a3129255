package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/Mainginick/market-speculation-hub/internal/config"
	handlers "github.com/Mainginick/market-speculation-hub/internal/handler"
)

func newTestHandlers(auth *MockAuthService, post *MockPostService, market *MockMarketService, userRepo *MockUserRepository) *handlers.Handlers {
	return &handlers.Handlers{
		AuthService:   auth,
		PostService:   post,
		MarketService: market,
		UserRepo:      userRepo,
		Cfg: &config.Config{
			SecretKey:     "test-secret",
			MaxUploadSize: 16 * 1024 * 1024,
		},
		Validate: validator.New(),
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handlers.HealthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
