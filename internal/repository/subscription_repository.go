package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

type SubscriptionRepository struct {
	*config.Database
}

func NewSubscriptionRepository(database *config.Database) *SubscriptionRepository {
	return &SubscriptionRepository{database}
}

// ToggleSubscription : true, если подписка оформлена, false, если отменена
func (r *SubscriptionRepository) ToggleSubscription(ctx context.Context, subscriberUUID, channelUUID string) (bool, error) {
	var subscribed bool
	err := withTx(ctx, r.Database, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM subscriptions WHERE subscriber_uuid = $1 AND channel_uuid = $2`,
			subscriberUUID, channelUUID,
		)
		if err != nil {
			return util.LogError("[SubscriptionRepo] не удалось отменить подписку", err)
		}

		removed, err := result.RowsAffected()
		if err != nil {
			return util.LogError("[SubscriptionRepo] не удалось проверить отмену подписки", err)
		}
		if removed > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO subscriptions (subscriber_uuid, channel_uuid) VALUES ($1, $2)`,
			subscriberUUID, channelUUID,
		); err != nil {
			return mapError("[SubscriptionRepo] не удалось оформить подписку", err)
		}
		subscribed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return subscribed, nil
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelUUID string) ([]model.UserSummary, error) {
	query := `
		SELECT u.uuid, u.username, u.full_name, u.avatar
		FROM subscriptions s
		JOIN users u ON u.uuid = s.subscriber_uuid
		WHERE s.channel_uuid = $1
		ORDER BY s.created_at DESC
	`
	subscribers := []model.UserSummary{}
	if err := sqlx.SelectContext(ctx, r.DB, &subscribers, query, channelUUID); err != nil {
		return nil, util.LogError("[SubscriptionRepo] не удалось получить подписчиков", err)
	}
	return subscribers, nil
}

func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberUUID string) ([]model.UserSummary, error) {
	query := `
		SELECT u.uuid, u.username, u.full_name, u.avatar
		FROM subscriptions s
		JOIN users u ON u.uuid = s.channel_uuid
		WHERE s.subscriber_uuid = $1
		ORDER BY s.created_at DESC
	`
	channels := []model.UserSummary{}
	if err := sqlx.SelectContext(ctx, r.DB, &channels, query, subscriberUUID); err != nil {
		return nil, util.LogError("[SubscriptionRepo] не удалось получить подписки", err)
	}
	return channels, nil
}
