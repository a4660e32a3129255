package test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "github.com/Mainginick/market-speculation-hub/internal/handler"
	"github.com/Mainginick/market-speculation-hub/internal/models"
	"github.com/Mainginick/market-speculation-hub/internal/repository"
)

func TestRegister_Success(t *testing.T) {
	auth := new(MockAuthService)
	h := newTestHandlers(auth, new(MockPostService), new(MockMarketService), new(MockUserRepository))

	user := &models.User{UserID: "u1", Username: "speculator"}

	auth.On("Register", mock.Anything, repository.CreateUserRequest{
		Username: "speculator",
		Password: "secret",
	}).Return(user, nil)
	auth.On("Login", mock.Anything, "speculator", "secret").
		Return(user, "access", "refresh", nil)

	body, _ := json.Marshal(map[string]string{
		"username": "speculator",
		"password": "secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp handlers.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
	assert.Equal(t, "speculator", resp.User.Username)

	auth.AssertExpectations(t)
}

func TestRegister_ShortPassword(t *testing.T) {
	auth := new(MockAuthService)
	h := newTestHandlers(auth, new(MockPostService), new(MockMarketService), new(MockUserRepository))

	body, _ := json.Marshal(map[string]string{
		"username": "speculator",
		"password": "abc",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	auth := new(MockAuthService)
	h := newTestHandlers(auth, new(MockPostService), new(MockMarketService), new(MockUserRepository))

	auth.On("Register", mock.Anything, mock.Anything).
		Return(nil, errors.New("пользователь speculator уже существует"))

	body, _ := json.Marshal(map[string]string{
		"username": "speculator",
		"password": "secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	auth := new(MockAuthService)
	h := newTestHandlers(auth, new(MockPostService), new(MockMarketService), new(MockUserRepository))

	user := &models.User{UserID: "u1", Username: "speculator"}
	auth.On("Login", mock.Anything, "speculator", "secret").
		Return(user, "access", "refresh", nil)

	body, _ := json.Marshal(map[string]string{
		"username": "speculator",
		"password": "secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.User.UserId)
}

func TestLogin_BadCredentials(t *testing.T) {
	auth := new(MockAuthService)
	h := newTestHandlers(auth, new(MockPostService), new(MockMarketService), new(MockUserRepository))

	auth.On("Login", mock.Anything, "speculator", "wrong").
		Return(nil, "", "", errors.New("неверный пароль"))

	body, _ := json.Marshal(map[string]string{
		"username": "speculator",
		"password": "wrong",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Неверное имя пользователя или пароль")
}

func TestRefreshToken_Expired(t *testing.T) {
	auth := new(MockAuthService)
	h := newTestHandlers(auth, new(MockPostService), new(MockMarketService), new(MockUserRepository))

	auth.On("RefreshTokens", mock.Anything, "stale").
		Return(nil, "", "", errors.New("недействительный refresh token"))

	body, _ := json.Marshal(map[string]string{"refreshToken": "stale"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.RefreshToken(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
