package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"videotube-server/config"
	"videotube-server/internal/apperror"
	"videotube-server/internal/handler"
	"videotube-server/internal/model"
	"videotube-server/internal/security"
)

// MockAuthenticationService
type MockAuthenticationService struct {
	mock.Mock
}

func (m *MockAuthenticationService) IssueTokenPair(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	args := m.Called(ctx, userUUID)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) Login(ctx context.Context, username, email, password string) (*model.LoginResult, error) {
	args := m.Called(ctx, username, email, password)
	if r, ok := args.Get(0).(*model.LoginResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) RefreshToken(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	args := m.Called(ctx, refreshToken)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticationService) Logout(ctx context.Context, userUUID string) error {
	args := m.Called(ctx, userUUID)
	return args.Error(0)
}

func (m *MockAuthenticationService) ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userUUID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthenticationService) VerifyAccessToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var testJWTConfig = &config.JWTConfig{
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 240 * time.Hour,
}

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

type errorResponse struct {
	Error struct {
		Code int    `json:"code"`
		Text string `json:"text"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(security.WithUser(r.Context(), user))
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthenticationHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMocks   func(m *MockAuthenticationService)
		expectStatus int
		expectText   string
	}{
		{
			name:         "invalid json",
			body:         `{"username":`,
			expectStatus: http.StatusBadRequest,
			expectText:   "invalid request body",
		},
		{
			name:         "password missing",
			body:         `{"username":"alice"}`,
			expectStatus: http.StatusBadRequest,
			expectText:   "password is required",
		},
		{
			name: "wrong password",
			body: `{"username":"alice","password":"nope"}`,
			setupMocks: func(m *MockAuthenticationService) {
				m.On("Login", mock.Anything, "alice", "", "nope").Return(nil, apperror.Unauthorized("invalid user credentials"))
			},
			expectStatus: http.StatusUnauthorized,
			expectText:   "invalid user credentials",
		},
		{
			name: "internal error hides cause",
			body: `{"email":"alice@example.com","password":"secret"}`,
			setupMocks: func(m *MockAuthenticationService) {
				m.On("Login", mock.Anything, "", "alice@example.com", "secret").
					Return(nil, apperror.Internal("failed to load user", errors.New("pq: connection refused")))
			},
			expectStatus: http.StatusInternalServerError,
			expectText:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthenticationService)
			if tt.setupMocks != nil {
				tt.setupMocks(authService)
			}
			h := handler.NewAuthenticationHandler(authService, testJWTConfig)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.expectStatus, resp.Error.Code)
			assert.Equal(t, tt.expectText, resp.Error.Text)
			assert.Empty(t, rec.Result().Cookies())
			authService.AssertExpectations(t)
		})
	}
}

func TestAuthenticationHandler_LoginSetsCookies(t *testing.T) {
	authService := new(MockAuthenticationService)
	authService.On("Login", mock.Anything, "alice", "", "secret").Return(&model.LoginResult{
		User:   &model.User{UUID: "user-1", Username: "alice"},
		Tokens: &model.TokensPair{AccessToken: "access", RefreshToken: "refresh"},
	}, nil)
	h := handler.NewAuthenticationHandler(authService, testJWTConfig)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(rec, security.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Equal(t, "access", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, 900, access.MaxAge)

	refresh := cookieByName(rec, security.RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh", refresh.Value)
	assert.Equal(t, 864000, refresh.MaxAge)

	var resp apiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "User logged in successfully", resp.Message)
	assert.Contains(t, string(resp.Data), `"accessToken":"access"`)
	assert.NotContains(t, string(resp.Data), "password")
}

func TestAuthenticationHandler_RefreshToken(t *testing.T) {
	t.Run("cookie wins over body", func(t *testing.T) {
		authService := new(MockAuthenticationService)
		authService.On("RefreshToken", mock.Anything, "from-cookie").
			Return(&model.TokensPair{AccessToken: "a2", RefreshToken: "r2"}, nil)
		h := handler.NewAuthenticationHandler(authService, testJWTConfig)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", strings.NewReader(`{"refreshToken":"from-body"}`))
		req.AddCookie(&http.Cookie{Name: security.RefreshTokenCookie, Value: "from-cookie"})
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "r2", cookieByName(rec, security.RefreshTokenCookie).Value)
		authService.AssertExpectations(t)
	})

	t.Run("body fallback", func(t *testing.T) {
		authService := new(MockAuthenticationService)
		authService.On("RefreshToken", mock.Anything, "from-body").
			Return(&model.TokensPair{AccessToken: "a2", RefreshToken: "r2"}, nil)
		h := handler.NewAuthenticationHandler(authService, testJWTConfig)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", strings.NewReader(`{"refreshToken":"from-body"}`))
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		authService.AssertExpectations(t)
	})

	t.Run("no token at all", func(t *testing.T) {
		authService := new(MockAuthenticationService)
		authService.On("RefreshToken", mock.Anything, "").Return(nil, apperror.Unauthorized("unauthorized request"))
		h := handler.NewAuthenticationHandler(authService, testJWTConfig)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized request", decodeError(t, rec).Error.Text)
	})

	t.Run("reused token", func(t *testing.T) {
		authService := new(MockAuthenticationService)
		authService.On("RefreshToken", mock.Anything, "old").Return(nil, apperror.Unauthorized("refresh token is expired or used"))
		h := handler.NewAuthenticationHandler(authService, testJWTConfig)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: security.RefreshTokenCookie, Value: "old"})
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestAuthenticationHandler_Logout(t *testing.T) {
	t.Run("clears cookies", func(t *testing.T) {
		authService := new(MockAuthenticationService)
		authService.On("Logout", mock.Anything, "user-1").Return(nil)
		h := handler.NewAuthenticationHandler(authService, testJWTConfig)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil), &model.User{UUID: "user-1"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		access := cookieByName(rec, security.AccessTokenCookie)
		require.NotNil(t, access)
		assert.Equal(t, "", access.Value)
		assert.True(t, access.MaxAge < 0)
		authService.AssertExpectations(t)
	})

	t.Run("without user", func(t *testing.T) {
		h := handler.NewAuthenticationHandler(new(MockAuthenticationService), testJWTConfig)

		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthenticationHandler_ChangePassword(t *testing.T) {
	authService := new(MockAuthenticationService)
	authService.On("ChangePassword", mock.Anything, "user-1", "wrong", "new-secret").
		Return(apperror.BadRequest("invalid old password"))
	h := handler.NewAuthenticationHandler(authService, testJWTConfig)

	body := `{"oldPassword":"wrong","newPassword":"new-secret"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", strings.NewReader(body)), &model.User{UUID: "user-1"})
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid old password", decodeError(t, rec).Error.Text)

	short := `{"oldPassword":"old","newPassword":"123"}`
	req = withUser(httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", strings.NewReader(short)), &model.User{UUID: "user-1"})
	rec = httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "newPassword must satisfy min=6", decodeError(t, rec).Error.Text)
	authService.AssertExpectations(t)
}
