package ports

import (
	"context"

	"videotube-server/internal/model"
)

type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Tweet, error)
	ListTweets(ctx context.Context) ([]model.TweetDetails, error)
	ListByOwner(ctx context.Context, ownerUUID string) ([]model.TweetDetails, error)
	UpdateTweet(ctx context.Context, uuid, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, uuid string) error
}

type TweetService interface {
	CreateTweet(ctx context.Context, ownerUUID, content string) (*model.Tweet, error)
	ListTweets(ctx context.Context) ([]model.TweetDetails, error)
	ListUserTweets(ctx context.Context, userUUID string) ([]model.TweetDetails, error)
	UpdateTweet(ctx context.Context, ownerUUID, tweetUUID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, ownerUUID, tweetUUID string) error
}
