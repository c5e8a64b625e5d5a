package service

import (
	"context"

	"go.uber.org/zap"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

type DashboardService struct {
	videoRepository ports.VideoRepository
	cache           ports.CacheRepository
}

func NewDashboardService(videoRepository ports.VideoRepository, cache ports.CacheRepository) *DashboardService {
	return &DashboardService{
		videoRepository: videoRepository,
		cache:           cache,
	}
}

// ChannelStats : сначала Redis, при промахе или ошибке кэша считаем в базе
func (s *DashboardService) ChannelStats(ctx context.Context, channelUUID string) (*model.ChannelStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetChannelStats(ctx, channelUUID)
		if err != nil {
			zap.L().Warn("[DashboardService] кэш недоступен, читаем из базы", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.videoRepository.ChannelStats(ctx, channelUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch channel stats", err)
	}
	stats.ChannelUUID = channelUUID

	if s.cache != nil {
		if err := s.cache.SetChannelStats(ctx, stats); err != nil {
			zap.L().Warn("[DashboardService] не удалось сохранить статистику в кэш", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *DashboardService) ChannelVideos(ctx context.Context, channelUUID string) ([]model.VideoDetails, error) {
	videos, err := s.videoRepository.ListByOwner(ctx, channelUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch channel videos", err)
	}
	return videos, nil
}
