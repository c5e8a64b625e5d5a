package ports

import (
	"context"

	"videotube-server/internal/model"
)

type AuthenticationService interface {
	IssueTokenPair(ctx context.Context, userUUID string) (*model.TokensPair, error)
	Login(ctx context.Context, username, email, password string) (*model.LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, userUUID string) error
	ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) error
	VerifyAccessToken(ctx context.Context, token string) (*model.User, error)
}
