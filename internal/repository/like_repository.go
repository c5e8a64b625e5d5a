package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

var likeTargetColumns = map[model.LikeTarget]string{
	model.LikeTargetVideo:   "video_uuid",
	model.LikeTargetComment: "comment_uuid",
	model.LikeTargetTweet:   "tweet_uuid",
}

type LikeRepository struct {
	*config.Database
}

func NewLikeRepository(database *config.Database) *LikeRepository {
	return &LikeRepository{database}
}

// ToggleLike : снимает лайк, если он был, иначе ставит. Возвращает true, если лайк поставлен.
func (r *LikeRepository) ToggleLike(ctx context.Context, target model.LikeTarget, targetUUID, userUUID string) (bool, error) {
	column, ok := likeTargetColumns[target]
	if !ok {
		return false, fmt.Errorf("[LikeRepo] неизвестный тип лайка: %s", target)
	}

	var liked bool
	err := withTx(ctx, r.Database, func(tx *sqlx.Tx) error {
		deleteQuery := fmt.Sprintf(`DELETE FROM likes WHERE liked_by = $1 AND %s = $2`, column)
		result, err := tx.ExecContext(ctx, deleteQuery, userUUID, targetUUID)
		if err != nil {
			return util.LogError("[LikeRepo] не удалось снять лайк", err)
		}

		removed, err := result.RowsAffected()
		if err != nil {
			return util.LogError("[LikeRepo] не удалось проверить, снят ли лайк", err)
		}
		if removed > 0 {
			return nil
		}

		insertQuery := fmt.Sprintf(`INSERT INTO likes (liked_by, %s) VALUES ($1, $2)`, column)
		if _, err := tx.ExecContext(ctx, insertQuery, userUUID, targetUUID); err != nil {
			return mapError("[LikeRepo] не удалось поставить лайк", err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *LikeRepository) ListLikedVideos(ctx context.Context, userUUID string) ([]model.VideoDetails, error) {
	query := `
		SELECT ` + videoDetailsColumns + `
		FROM likes lk
		JOIN videos v ON v.uuid = lk.video_uuid
		JOIN users u ON u.uuid = v.owner_uuid
		WHERE lk.liked_by = $1 AND v.is_published = TRUE
		ORDER BY lk.created_at DESC
	`
	videos := []model.VideoDetails{}
	if err := sqlx.SelectContext(ctx, r.DB, &videos, query, userUUID); err != nil {
		return nil, util.LogError("[LikeRepo] не удалось получить понравившиеся видео", err)
	}
	return videos, nil
}
