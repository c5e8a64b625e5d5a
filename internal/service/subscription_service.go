package service

import (
	"context"
	"errors"

	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

type SubscriptionService struct {
	subscriptionRepository ports.SubscriptionRepository
	userRepository         ports.UserRepository
}

func NewSubscriptionService(subscriptionRepository ports.SubscriptionRepository, userRepository ports.UserRepository) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
	}
}

func (s *SubscriptionService) ToggleSubscription(ctx context.Context, subscriberUUID, channelUUID string) (*model.SubscriptionToggleResult, error) {
	if subscriberUUID == channelUUID {
		return nil, apperror.BadRequest("you cannot subscribe to your own channel")
	}
	if err := s.channelExists(ctx, channelUUID); err != nil {
		return nil, err
	}

	subscribed, err := s.subscriptionRepository.ToggleSubscription(ctx, subscriberUUID, channelUUID)
	if err != nil {
		return nil, apperror.Internal("failed to toggle subscription", err)
	}
	return &model.SubscriptionToggleResult{ChannelUUID: channelUUID, Subscribed: subscribed}, nil
}

func (s *SubscriptionService) ChannelSubscribers(ctx context.Context, channelUUID string) ([]model.UserSummary, error) {
	if err := s.channelExists(ctx, channelUUID); err != nil {
		return nil, err
	}

	subscribers, err := s.subscriptionRepository.ListSubscribers(ctx, channelUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch subscribers", err)
	}
	return subscribers, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberUUID string) ([]model.UserSummary, error) {
	channels, err := s.subscriptionRepository.ListSubscribedChannels(ctx, subscriberUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch subscribed channels", err)
	}
	return channels, nil
}

func (s *SubscriptionService) channelExists(ctx context.Context, channelUUID string) error {
	if _, err := s.userRepository.FindByUUID(ctx, channelUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("channel does not exist")
		}
		return apperror.Internal("failed to fetch channel", err)
	}
	return nil
}
