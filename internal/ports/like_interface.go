package ports

import (
	"context"

	"videotube-server/internal/model"
)

type LikeRepository interface {
	ToggleLike(ctx context.Context, target model.LikeTarget, targetUUID, userUUID string) (bool, error)
	ListLikedVideos(ctx context.Context, userUUID string) ([]model.VideoDetails, error)
}

type LikeService interface {
	ToggleLike(ctx context.Context, userUUID string, target model.LikeTarget, targetUUID string) (*model.LikeToggleResult, error)
	LikedVideos(ctx context.Context, userUUID string) ([]model.VideoDetails, error)
}
