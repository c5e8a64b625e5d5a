package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

var ErrMissingUserUUID = errors.New("token has no user_uuid claim")

// AccessClaims : полезная нагрузка access токена
type AccessClaims struct {
	UserUUID string `json:"user_uuid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// RefreshClaims : refresh токен несет только идентификатор пользователя
type RefreshClaims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	cfg *config.JWTConfig
	now func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg: cfg, now: time.Now}
}

// GenerateAccessToken : HS512 токен с данными пользователя, подписан секретом access токенов
func (s *JWTService) GenerateAccessToken(user *model.User) (string, error) {
	claims := AccessClaims{
		UserUUID:         user.UUID,
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		RegisteredClaims: s.registeredClaims(s.cfg.AccessTokenTTL),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return "", util.LogError("[JWTService] ошибка подписи access токена", err)
	}
	return token, nil
}

// GenerateRefreshToken : HS512 токен, подписан отдельным секретом refresh токенов
func (s *JWTService) GenerateRefreshToken(userUUID string) (string, error) {
	claims := RefreshClaims{
		UserUUID:         userUUID,
		RegisteredClaims: s.registeredClaims(s.cfg.RefreshTokenTTL),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.cfg.RefreshTokenSecret))
	if err != nil {
		return "", util.LogError("[JWTService] ошибка подписи refresh токена", err)
	}
	return token, nil
}

func (s *JWTService) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(tokenStr, claims, s.cfg.AccessTokenSecret); err != nil {
		return nil, err
	}
	if claims.UserUUID == "" {
		return nil, ErrMissingUserUUID
	}
	return claims, nil
}

func (s *JWTService) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(tokenStr, claims, s.cfg.RefreshTokenSecret); err != nil {
		return nil, err
	}
	if claims.UserUUID == "" {
		return nil, ErrMissingUserUUID
	}
	return claims, nil
}

// jti уникален, поэтому два токена, выпущенные в одну секунду, не совпадают
func (s *JWTService) registeredClaims(ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *JWTService) parse(tokenStr string, claims jwt.Claims, secret string) error {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, options...)
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}
