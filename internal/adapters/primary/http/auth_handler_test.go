package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/ticket-health-backend/internal/auth"
	"github.com/opsboard/ticket-health-backend/internal/core/domain"
	apperrors "github.com/opsboard/ticket-health-backend/internal/core/errors"
	"github.com/opsboard/ticket-health-backend/internal/core/mocks"
)

func newAuthRouter(service *mocks.MockAuthService) (*chi.Mux, *auth.TokenManager) {
	logger := testLogger()
	tokenManager := auth.NewTokenManager("test-secret", time.Hour)
	handler := NewAuthHandler(service, tokenManager, NewErrorHandler(logger), logger)

	router := chi.NewRouter()
	router.Route("/auth", handler.RegisterRoutes)
	return router, tokenManager
}

func TestLogin(t *testing.T) {
	service := mocks.NewMockAuthService()

	user := &domain.User{ID: 21, Username: "demo", DisplayName: "Demo User"}
	service.On("Login", mock.Anything, "demo", "demo1234").Return(user, nil)

	router, tokenManager := newAuthRouter(service)

	body, _ := json.Marshal(LoginRequest{Username: "demo", Password: "demo1234"})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/login", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response TokenResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, int64(21), response.User.ID)
	assert.Equal(t, "demo", response.User.Username)

	claims, err := tokenManager.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(21), claims.UserID)
	assert.Equal(t, "demo", claims.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	service := mocks.NewMockAuthService()
	service.On("Login", mock.Anything, "demo", "wrong").Return(nil, apperrors.ErrInvalidCredentials)

	router, _ := newAuthRouter(service)

	body, _ := json.Marshal(LoginRequest{Username: "demo", Password: "wrong"})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/login", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnauthorized, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "INVALID_CREDENTIALS", response.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	service := mocks.NewMockAuthService()

	router, _ := newAuthRouter(service)

	body, _ := json.Marshal(LoginRequest{})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/login", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	service.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister(t *testing.T) {
	service := mocks.NewMockAuthService()

	user := &domain.User{ID: 22, Username: "newuser", DisplayName: "New User"}
	service.On("Register", mock.Anything, "newuser", "New User", "password123").Return(user, nil)

	router, _ := newAuthRouter(service)

	body, _ := json.Marshal(RegisterRequest{
		Username:    "newuser",
		DisplayName: "New User",
		Password:    "password123",
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusCreated, recorder.Code)

	var response TokenResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "newuser", response.User.Username)
	assert.NotEmpty(t, response.Token)
}

func TestRegister_Duplicate(t *testing.T) {
	service := mocks.NewMockAuthService()
	service.On("Register", mock.Anything, "demo", "", "password123").Return(nil, apperrors.ErrUserExists)

	router, _ := newAuthRouter(service)

	body, _ := json.Marshal(RegisterRequest{Username: "demo", Password: "password123"})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusConflict, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "USER_EXISTS", response.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	service := mocks.NewMockAuthService()

	router, _ := newAuthRouter(service)

	body, _ := json.Marshal(RegisterRequest{Username: "demo", Password: "short"})
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/register", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	service.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
