package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
	"videotube-server/internal/security"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	tokenService   ports.TokenService
	passwordHasher ports.PasswordHasher
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	tokenService ports.TokenService,
	passwordHasher ports.PasswordHasher,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		tokenService:   tokenService,
		passwordHasher: passwordHasher,
	}
}

// IssueTokenPair выпускает новую пару токенов и запоминает хэш refresh токена у пользователя.
// Предыдущий refresh токен пользователя перестает работать.
func (s *AuthenticationService) IssueTokenPair(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("user does not exist")
		}
		return nil, apperror.Internal("something went wrong while generating tokens", err)
	}

	tokens, refreshHash, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepository.SetRefreshToken(ctx, user.UUID, refreshHash); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("user does not exist")
		}
		return nil, apperror.Internal("something went wrong while saving refresh token", err)
	}

	return tokens, nil
}

// Login : вход по username или email. Хэш пароля в ответе не возвращается.
func (s *AuthenticationService) Login(ctx context.Context, username, email, password string) (*model.LoginResult, error) {
	username = normalizeIdentifier(username)
	email = normalizeIdentifier(email)
	if username == "" && email == "" {
		return nil, apperror.BadRequest("username or email is required")
	}

	user, err := s.userRepository.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("user does not exist")
		}
		return nil, apperror.Internal("failed to load user", err)
	}

	ok, err := s.passwordHasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, apperror.Internal("failed to verify password", err)
	}
	if !ok {
		return nil, apperror.Unauthorized("invalid user credentials")
	}

	tokens, err := s.IssueTokenPair(ctx, user.UUID)
	if err != nil {
		return nil, err
	}

	zap.L().Info("[AuthenticationService] пользователь вошел в систему", zap.String("user_uuid", user.UUID))
	return &model.LoginResult{User: user.Sanitized(), Tokens: tokens}, nil
}

// RefreshToken меняет предъявленный refresh токен на новую пару.
//
// Токен принимается, только если его хэш совпадает с сохраненным у пользователя.
// Замена хэша выполняется условным UPDATE, поэтому из нескольких параллельных
// запросов с одним и тем же токеном успешен ровно один, остальные получают 401.
func (s *AuthenticationService) RefreshToken(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	if refreshToken == "" {
		return nil, apperror.Unauthorized("unauthorized request")
	}

	claims, err := s.tokenService.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthorized, "invalid refresh token", err)
	}

	user, err := s.userRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid refresh token")
		}
		return nil, apperror.Internal("failed to load user", err)
	}

	presentedHash := security.HashToken(refreshToken)
	if user.RefreshTokenHash == nil || !security.TokenHashEqual(*user.RefreshTokenHash, presentedHash) {
		return nil, apperror.Unauthorized("refresh token is expired or used")
	}

	tokens, nextHash, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	swapped, err := s.userRepository.SwapRefreshToken(ctx, user.UUID, presentedHash, nextHash)
	if err != nil {
		return nil, apperror.Internal("something went wrong while saving refresh token", err)
	}
	if !swapped {
		zap.L().Warn("[AuthenticationService] повторное использование refresh токена", zap.String("user_uuid", user.UUID))
		return nil, apperror.Unauthorized("refresh token is expired or used")
	}

	return tokens, nil
}

// Logout удаляет сохраненный refresh токен, повторный вызов не ошибка
func (s *AuthenticationService) Logout(ctx context.Context, userUUID string) error {
	if err := s.userRepository.ClearRefreshToken(ctx, userUUID); err != nil {
		return apperror.Internal("failed to logout", err)
	}
	return nil
}

// ChangePassword : неверный старый пароль -> 400, сессии при этом не сбрасываются
func (s *AuthenticationService) ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperror.BadRequest("new password is required")
	}
	if len(newPassword) > security.MaxPasswordBytes {
		return apperror.BadRequest(security.ErrPasswordTooLong.Error())
	}

	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("user does not exist")
		}
		return apperror.Internal("failed to load user", err)
	}

	ok, err := s.passwordHasher.Verify(ctx, oldPassword, user.PasswordHash)
	if err != nil {
		return apperror.Internal("failed to verify password", err)
	}
	if !ok {
		return apperror.BadRequest("invalid old password")
	}

	hash, err := s.passwordHasher.Hash(ctx, newPassword)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, user.UUID, hash); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("user does not exist")
		}
		return apperror.Internal("failed to update password", err)
	}
	return nil
}

// VerifyAccessToken : проверка access токена для middleware, пользователь перечитывается из БД
func (s *AuthenticationService) VerifyAccessToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokenService.ParseAccessToken(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthorized, "invalid access token", err)
	}

	user, err := s.userRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid access token")
		}
		return nil, apperror.Internal("failed to load user", err)
	}

	return user.Sanitized(), nil
}

// generateTokenPair возвращает пару токенов и хэш refresh токена для сохранения
func (s *AuthenticationService) generateTokenPair(user *model.User) (*model.TokensPair, string, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", apperror.Internal("something went wrong while generating tokens", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken(user.UUID)
	if err != nil {
		return nil, "", apperror.Internal("something went wrong while generating tokens", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, security.HashToken(refreshToken), nil
}

func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
