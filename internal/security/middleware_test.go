package security

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/model/requestresponse"
)

type stubVerifier struct {
	tokens map[string]*model.User
	err    error
	seen   []string
}

func (s *stubVerifier) VerifyAccessToken(ctx context.Context, token string) (*model.User, error) {
	s.seen = append(s.seen, token)
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.tokens[token]
	if !ok {
		return nil, apperror.Unauthorized("invalid access token")
	}
	return user, nil
}

func protectedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r.Context())
		require.NoError(t, err)
		w.Write([]byte(user.Username))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) requestresponse.ErrorResponse {
	t.Helper()
	var resp requestresponse.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestJWTMiddleware(t *testing.T) {
	alice := &model.User{UUID: "a", Username: "alice"}
	bob := &model.User{UUID: "b", Username: "bob"}

	tests := []struct {
		name       string
		cookie     string
		header     string
		verifyErr  error
		wantStatus int
		wantBody   string
		wantText   string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized, wantText: "unauthorized request"},
		{name: "bearer header", header: "Bearer bob-token", wantStatus: http.StatusOK, wantBody: "bob"},
		{name: "cookie wins over header", cookie: "alice-token", header: "Bearer bob-token", wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "invalid token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantText: "invalid access token"},
		{name: "malformed header", header: "Token bob-token", wantStatus: http.StatusUnauthorized, wantText: "unauthorized request"},
		{
			name:       "store failure",
			header:     "Bearer bob-token",
			verifyErr:  apperror.Internal("lookup failed", errors.New("db down")),
			wantStatus: http.StatusInternalServerError,
			wantText:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{
				tokens: map[string]*model.User{"alice-token": alice, "bob-token": bob},
				err:    tt.verifyErr,
			}
			handler := JWTMiddleware(verifier)(protectedHandler(t))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, decodeError(t, rec).Error.Text)
			}
		})
	}
}

func TestGetUserFromContext_Missing(t *testing.T) {
	_, err := GetUserFromContext(context.Background())
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestSetAndClearSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookies(rec, &model.TokensPair{AccessToken: "at", RefreshToken: "rt"}, 15*time.Minute, 240*time.Hour)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, "/", cookie.Path)
	}
	assert.Equal(t, AccessTokenCookie, cookies[0].Name)
	assert.Equal(t, "at", cookies[0].Value)
	assert.Equal(t, 900, cookies[0].MaxAge)
	assert.Equal(t, RefreshTokenCookie, cookies[1].Name)
	assert.Equal(t, 864000, cookies[1].MaxAge)

	rec = httptest.NewRecorder()
	ClearSessionCookies(rec)
	for _, cookie := range rec.Result().Cookies() {
		assert.Equal(t, "", cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
	}
}
