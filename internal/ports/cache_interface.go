package ports

import (
	"context"

	"videotube-server/internal/model"
)

// CacheRepository : Redis слой, промах кэша возвращает nil без ошибки
type CacheRepository interface {
	SetChannelStats(ctx context.Context, stats *model.ChannelStats) error
	GetChannelStats(ctx context.Context, channelUUID string) (*model.ChannelStats, error)
	DeleteChannelStats(ctx context.Context, channelUUID string) error
}
