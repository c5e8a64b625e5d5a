package security

import (
	"net/http"
	"strings"
	"time"

	"videotube-server/internal/model"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	cookiePath                            = "/"
	cookieHTTPOnlyNotJavascriptAccessible = true
	cookieSecureHTTPSOnly                 = true
	cookieMaxAgeDeleteImmediately         = -1
)

// SetSessionCookies : выставляет обе cookie сессии, время жизни совпадает со временем жизни токенов
func SetSessionCookies(w http.ResponseWriter, tokens *model.TokensPair, accessTTL, refreshTTL time.Duration) {
	setCookie(w, AccessTokenCookie, tokens.AccessToken, int(accessTTL.Seconds()))
	setCookie(w, RefreshTokenCookie, tokens.RefreshToken, int(refreshTTL.Seconds()))
}

func ClearSessionCookies(w http.ResponseWriter) {
	setCookie(w, AccessTokenCookie, "", cookieMaxAgeDeleteImmediately)
	setCookie(w, RefreshTokenCookie, "", cookieMaxAgeDeleteImmediately)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   maxAge,
		Path:     cookiePath,
		HttpOnly: cookieHTTPOnlyNotJavascriptAccessible,
		Secure:   cookieSecureHTTPSOnly,
		SameSite: http.SameSiteStrictMode,
	})
}

// AccessTokenFromRequest : cookie имеет приоритет над заголовком Authorization
func AccessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authorizationHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authorizationHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func RefreshTokenFromCookie(r *http.Request) string {
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
