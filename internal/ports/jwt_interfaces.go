package ports

import (
	"context"

	"videotube-server/internal/model"
	"videotube-server/internal/security"
)

type TokenService interface {
	GenerateAccessToken(user *model.User) (string, error)
	GenerateRefreshToken(userUUID string) (string, error)
	ParseAccessToken(tokenStr string) (*security.AccessClaims, error)
	ParseRefreshToken(tokenStr string) (*security.RefreshClaims, error)
}

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}
