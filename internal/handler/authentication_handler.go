package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"videotube-server/config"
	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/security"
	"videotube-server/internal/util"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	jwtConfig *config.JWTConfig
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService, jwtConfig *config.JWTConfig) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService, jwtConfig}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по username или email и паролю. Токены выставляются в HttpOnly cookie и дублируются в теле ответа.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.APIResponse{data=requestresponse.LoginData} "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный пароль"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 429 {object} requestresponse.ErrorResponse "Слишком много попыток"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.AuthenticationService.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	security.SetSessionCookies(w, result.Tokens, h.jwtConfig.AccessTokenTTL, h.jwtConfig.RefreshTokenTTL)
	writeJSON(w, http.StatusOK, requestresponse.LoginData{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @Summary Выход из системы
// @Description Удаляет сохраненный refresh токен и очищает cookie сессии. Повторный вызов не ошибка.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.APIResponse "Пользователь вышел"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/v1/users/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), user.UUID); err != nil {
		util.WriteError(w, r, err)
		return
	}

	security.ClearSessionCookies(w)
	writeJSON(w, http.StatusOK, struct{}{}, "User logged out")
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Меняет refresh токен (из cookie или тела запроса) на новую пару. Использованный токен больше не принимается.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest false "Refresh токен, если нет cookie"
// @Success 200 {object} requestresponse.APIResponse{data=model.TokensPair} "Новые access и refresh токены"
// @Failure 401 {object} requestresponse.ErrorResponse "Токен невалиден, истек или уже использован"
// @Failure 429 {object} requestresponse.ErrorResponse "Слишком много попыток"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/refresh-token [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := security.RefreshTokenFromCookie(r)
	if refreshToken == "" {
		var req requestresponse.RefreshTokenRequest
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, err := h.AuthenticationService.RefreshToken(r.Context(), refreshToken)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	security.SetSessionCookies(w, tokens, h.jwtConfig.AccessTokenTTL, h.jwtConfig.RefreshTokenTTL)
	writeJSON(w, http.StatusOK, tokens, "Access token refreshed")
}

// ChangePassword godoc
// @Summary Смена пароля
// @Description Меняет пароль текущего пользователя после проверки старого пароля
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.ChangePasswordRequest true "Старый и новый пароль"
// @Success 200 {object} requestresponse.APIResponse "Пароль изменен"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный старый пароль или невалидный новый"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/v1/users/change-password [post]
func (h *AuthenticationHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthenticationService.ChangePassword(r.Context(), user.UUID, req.OldPassword, req.NewPassword); err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль авторизованного пользователя без секретных полей
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.APIResponse{data=model.User}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/current-user [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, user, "User fetched successfully")
}
