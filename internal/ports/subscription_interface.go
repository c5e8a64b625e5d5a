package ports

import (
	"context"

	"videotube-server/internal/model"
)

type SubscriptionRepository interface {
	ToggleSubscription(ctx context.Context, subscriberUUID, channelUUID string) (bool, error)
	ListSubscribers(ctx context.Context, channelUUID string) ([]model.UserSummary, error)
	ListSubscribedChannels(ctx context.Context, subscriberUUID string) ([]model.UserSummary, error)
}

type SubscriptionService interface {
	ToggleSubscription(ctx context.Context, subscriberUUID, channelUUID string) (*model.SubscriptionToggleResult, error)
	ChannelSubscribers(ctx context.Context, channelUUID string) ([]model.UserSummary, error)
	SubscribedChannels(ctx context.Context, subscriberUUID string) ([]model.UserSummary, error)
}
