package ports

import (
	"context"

	"videotube-server/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error
	UpdateAvatar(ctx context.Context, uuid, avatarURL string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, uuid, coverImageURL string) (*model.User, error)
	SetRefreshToken(ctx context.Context, uuid, tokenHash string) error
	SwapRefreshToken(ctx context.Context, uuid, expectedHash, nextHash string) (bool, error)
	ClearRefreshToken(ctx context.Context, uuid string) error
	GetChannelProfile(ctx context.Context, username, viewerUUID string) (*model.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, uuid string) ([]model.VideoDetails, error)
}

type UserService interface {
	Register(ctx context.Context, input *model.RegisterInput) (*model.User, error)
	UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, user *model.User, upload *model.Upload) (*model.User, error)
	UpdateCoverImage(ctx context.Context, user *model.User, upload *model.Upload) (*model.User, error)
	GetChannelProfile(ctx context.Context, username, viewerUUID string) (*model.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, uuid string) ([]model.VideoDetails, error)
}
