package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetChannelStats(ctx context.Context, stats *model.ChannelStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return util.LogError("ошибка сериализации статистики канала", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(stats.ChannelUUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetChannelStats(ctx context.Context, channelUUID string) (*model.ChannelStats, error) {
	val, err := r.client.Client.Get(ctx, r.key(channelUUID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения статистики из Redis", err)
	}

	var stats model.ChannelStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return nil, util.LogError("ошибка десериализации статистики из кэша", err)
	}
	return &stats, nil
}

func (r *CacheRepository) DeleteChannelStats(ctx context.Context, channelUUID string) error {
	if err := r.client.Client.Del(ctx, r.key(channelUUID)).Err(); err != nil {
		return util.LogError("ошибка удаления статистики из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(channelUUID string) string {
	return fmt.Sprintf("channel_stats:%s", channelUUID)
}
