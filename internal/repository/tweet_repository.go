package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

const tweetColumns = `uuid, owner_uuid, content, created_at, updated_at`

const tweetDetailsQuery = `
	SELECT t.uuid, t.owner_uuid, t.content, t.created_at, t.updated_at,
		u.uuid AS "owner.uuid", u.username AS "owner.username",
		u.full_name AS "owner.full_name", u.avatar AS "owner.avatar",
		(SELECT COUNT(*) FROM likes l WHERE l.tweet_uuid = t.uuid) AS likes_count
	FROM tweets t
	JOIN users u ON u.uuid = t.owner_uuid
`

type TweetRepository struct {
	*config.Database
}

func NewTweetRepository(database *config.Database) *TweetRepository {
	return &TweetRepository{database}
}

func (r *TweetRepository) CreateTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	query := `INSERT INTO tweets (uuid, owner_uuid, content) VALUES ($1, $2, $3) RETURNING ` + tweetColumns

	var created model.Tweet
	if err := r.DB.QueryRowxContext(ctx, query, tweet.UUID, tweet.OwnerUUID, tweet.Content).StructScan(&created); err != nil {
		return nil, mapError("[TweetRepo] ошибка вставки твита в БД", err)
	}
	return &created, nil
}

func (r *TweetRepository) FindByUUID(ctx context.Context, uuid string) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := sqlx.GetContext(ctx, r.DB, &tweet, `SELECT `+tweetColumns+` FROM tweets WHERE uuid = $1`, uuid); err != nil {
		return nil, mapError("[TweetRepo] твит не найден", err)
	}
	return &tweet, nil
}

func (r *TweetRepository) ListTweets(ctx context.Context) ([]model.TweetDetails, error) {
	tweets := []model.TweetDetails{}
	if err := sqlx.SelectContext(ctx, r.DB, &tweets, tweetDetailsQuery+` ORDER BY t.created_at DESC`); err != nil {
		return nil, util.LogError("[TweetRepo] не удалось получить список твитов", err)
	}
	return tweets, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.TweetDetails, error) {
	tweets := []model.TweetDetails{}
	query := tweetDetailsQuery + ` WHERE t.owner_uuid = $1 ORDER BY t.created_at DESC`
	if err := sqlx.SelectContext(ctx, r.DB, &tweets, query, ownerUUID); err != nil {
		return nil, util.LogError("[TweetRepo] не удалось получить твиты пользователя", err)
	}
	return tweets, nil
}

func (r *TweetRepository) UpdateTweet(ctx context.Context, uuid, content string) (*model.Tweet, error) {
	query := `UPDATE tweets SET content = $2, updated_at = NOW() WHERE uuid = $1 RETURNING ` + tweetColumns

	var updated model.Tweet
	if err := r.DB.QueryRowxContext(ctx, query, uuid, content).StructScan(&updated); err != nil {
		return nil, mapError("[TweetRepo] не удалось обновить твит", err)
	}
	return &updated, nil
}

func (r *TweetRepository) DeleteTweet(ctx context.Context, uuid string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tweets WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[TweetRepo] не удалось удалить твит", err)
	}
	return requireAffected(result, "[TweetRepo] твит для удаления не найден")
}
