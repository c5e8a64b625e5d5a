package ports

import (
	"context"

	"videotube-server/internal/model"
)

type DashboardService interface {
	ChannelStats(ctx context.Context, channelUUID string) (*model.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelUUID string) ([]model.VideoDetails, error)
}
