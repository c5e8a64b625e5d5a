package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

type TweetService struct {
	tweetRepository ports.TweetRepository
}

func NewTweetService(tweetRepository ports.TweetRepository) *TweetService {
	return &TweetService{tweetRepository: tweetRepository}
}

func (s *TweetService) CreateTweet(ctx context.Context, ownerUUID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}

	tweet, err := s.tweetRepository.CreateTweet(ctx, &model.Tweet{
		UUID:      uuid.New().String(),
		OwnerUUID: ownerUUID,
		Content:   content,
	})
	if err != nil {
		return nil, apperror.Internal("failed to create tweet", err)
	}
	return tweet, nil
}

func (s *TweetService) ListTweets(ctx context.Context) ([]model.TweetDetails, error) {
	tweets, err := s.tweetRepository.ListTweets(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to fetch tweets", err)
	}
	return tweets, nil
}

func (s *TweetService) ListUserTweets(ctx context.Context, userUUID string) ([]model.TweetDetails, error) {
	tweets, err := s.tweetRepository.ListByOwner(ctx, userUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch user tweets", err)
	}
	return tweets, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, ownerUUID, tweetUUID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}
	if err := s.checkOwner(ctx, ownerUUID, tweetUUID); err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepository.UpdateTweet(ctx, tweetUUID, content)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("tweet does not exist")
		}
		return nil, apperror.Internal("failed to update tweet", err)
	}
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, ownerUUID, tweetUUID string) error {
	if err := s.checkOwner(ctx, ownerUUID, tweetUUID); err != nil {
		return err
	}

	if err := s.tweetRepository.DeleteTweet(ctx, tweetUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("tweet does not exist")
		}
		return apperror.Internal("failed to delete tweet", err)
	}
	return nil
}

func (s *TweetService) checkOwner(ctx context.Context, ownerUUID, tweetUUID string) error {
	tweet, err := s.tweetRepository.FindByUUID(ctx, tweetUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("tweet does not exist")
		}
		return apperror.Internal("failed to fetch tweet", err)
	}
	if tweet.OwnerUUID != ownerUUID {
		return apperror.Forbidden("you are not the owner of this tweet")
	}
	return nil
}
