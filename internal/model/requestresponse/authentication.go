package requestresponse

import "videotube-server/internal/model"

// LoginRequest : тело запроса на аутентификацию, достаточно username или email
type LoginRequest struct {
	Username string `json:"username" validate:"omitempty,max=64" example:"johndoe"`
	Email    string `json:"email" validate:"omitempty,email" example:"john@example.com"`
	Password string `json:"password" validate:"required" example:"P@ssw0rd123"`
}

// LoginData : данные ответа на вход, токены дублируются для клиентов без cookie
type LoginData struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string      `json:"refreshToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshTokenRequest : refresh токен в теле, если нет cookie
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
}

// ChangePasswordRequest : смена пароля текущего пользователя
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required" example:"P@ssw0rd123"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72" example:"N3wP@ssw0rd"`
}
