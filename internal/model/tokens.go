package model

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (JWT, подписан отдельным секретом)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}

// LoginResult : результат успешного входа
type LoginResult struct {
	User   *User       `json:"user"`
	Tokens *TokensPair `json:"-"`
}
