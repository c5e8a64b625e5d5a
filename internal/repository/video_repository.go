package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

const videoColumns = `uuid, owner_uuid, video_file, thumbnail, title, description, duration, views, is_published, created_at, updated_at`

// допустимые поля сортировки списка видео
var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

// спецсимволы LIKE в строке поиска ищутся буквально
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

type VideoRepository struct {
	*config.Database
}

func NewVideoRepository(database *config.Database) *VideoRepository {
	return &VideoRepository{database}
}

func (r *VideoRepository) CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	query := `
	INSERT INTO videos (uuid, owner_uuid, video_file, thumbnail, title, description, duration, is_published)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + videoColumns

	var created model.Video
	err := r.DB.QueryRowxContext(ctx, query,
		video.UUID,
		video.OwnerUUID,
		video.VideoFile,
		video.Thumbnail,
		video.Title,
		video.Description,
		video.Duration,
		video.IsPublished,
	).StructScan(&created)
	if err != nil {
		return nil, mapError("[VideoRepo] ошибка вставки видео в БД", err)
	}
	return &created, nil
}

func (r *VideoRepository) FindByUUID(ctx context.Context, uuid string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE uuid = $1`
	var video model.Video
	if err := sqlx.GetContext(ctx, r.DB, &video, query, uuid); err != nil {
		return nil, mapError("[VideoRepo] видео не найдено", err)
	}
	return &video, nil
}

func (r *VideoRepository) GetDetails(ctx context.Context, uuid string) (*model.VideoDetails, error) {
	query := `
		SELECT ` + videoDetailsColumns + `
		FROM videos v
		JOIN users u ON u.uuid = v.owner_uuid
		WHERE v.uuid = $1
	`
	var details model.VideoDetails
	if err := sqlx.GetContext(ctx, r.DB, &details, query, uuid); err != nil {
		return nil, mapError("[VideoRepo] видео не найдено", err)
	}
	return &details, nil
}

// ListPublished : опубликованные видео с поиском по названию/описанию и пагинацией
func (r *VideoRepository) ListPublished(ctx context.Context, q model.VideoListQuery) ([]model.VideoDetails, error) {
	var (
		conditions = []string{"v.is_published = TRUE"}
		args       []interface{}
	)

	if q.Query != "" {
		args = append(args, "%"+escapeLike(q.Query)+"%")
		conditions = append(conditions, fmt.Sprintf(`(v.title ILIKE $%d ESCAPE '\' OR v.description ILIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	if q.OwnerUUID != "" {
		args = append(args, q.OwnerUUID)
		conditions = append(conditions, fmt.Sprintf("v.owner_uuid = $%d", len(args)))
	}

	sortColumn, ok := videoSortColumns[q.SortBy]
	if !ok {
		sortColumn = videoSortColumns["createdAt"]
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		JOIN users u ON u.uuid = v.owner_uuid
		WHERE %s
		ORDER BY %s %s, v.uuid
		LIMIT $%d OFFSET $%d
	`, videoDetailsColumns, strings.Join(conditions, " AND "), sortColumn, direction, len(args)-1, len(args))

	videos := []model.VideoDetails{}
	if err := sqlx.SelectContext(ctx, r.DB, &videos, query, args...); err != nil {
		return nil, util.LogError("[VideoRepo] не удалось получить список видео", err)
	}
	return videos, nil
}

// ListByOwner : все видео канала, включая неопубликованные
func (r *VideoRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.VideoDetails, error) {
	query := `
		SELECT ` + videoDetailsColumns + `
		FROM videos v
		JOIN users u ON u.uuid = v.owner_uuid
		WHERE v.owner_uuid = $1
		ORDER BY v.created_at DESC
	`
	videos := []model.VideoDetails{}
	if err := sqlx.SelectContext(ctx, r.DB, &videos, query, ownerUUID); err != nil {
		return nil, util.LogError("[VideoRepo] не удалось получить видео канала", err)
	}
	return videos, nil
}

func (r *VideoRepository) UpdateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail = $4, updated_at = NOW()
		WHERE uuid = $1
		RETURNING ` + videoColumns

	var updated model.Video
	err := r.DB.QueryRowxContext(ctx, query, video.UUID, video.Title, video.Description, video.Thumbnail).StructScan(&updated)
	if err != nil {
		return nil, mapError("[VideoRepo] не удалось обновить видео", err)
	}
	return &updated, nil
}

// TogglePublish : возвращает новое значение is_published
func (r *VideoRepository) TogglePublish(ctx context.Context, uuid string) (bool, error) {
	query := `UPDATE videos SET is_published = NOT is_published, updated_at = NOW() WHERE uuid = $1 RETURNING is_published`

	var published bool
	if err := sqlx.GetContext(ctx, r.DB, &published, query, uuid); err != nil {
		return false, mapError("[VideoRepo] не удалось изменить статус публикации", err)
	}
	return published, nil
}

func (r *VideoRepository) SetPublished(ctx context.Context, uuid string, published bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE videos SET is_published = $2, updated_at = NOW() WHERE uuid = $1`,
		uuid, published,
	)
	if err != nil {
		return util.LogError("[VideoRepo] не удалось изменить статус публикации", err)
	}
	return requireAffected(result, "[VideoRepo] видео для публикации не найдено")
}

// DeleteVideo : лайки, комментарии и записи истории удаляются каскадно
func (r *VideoRepository) DeleteVideo(ctx context.Context, uuid string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM videos WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[VideoRepo] не удалось удалить видео", err)
	}
	return requireAffected(result, "[VideoRepo] видео для удаления не найдено")
}

// RecordView : увеличивает счетчик просмотров и поднимает видео в истории зрителя
func (r *VideoRepository) RecordView(ctx context.Context, videoUUID, viewerUUID string) error {
	return withTx(ctx, r.Database, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE uuid = $1`, videoUUID); err != nil {
			return util.LogError("[VideoRepo] не удалось увеличить счетчик просмотров", err)
		}

		query := `
			INSERT INTO watch_history (user_uuid, video_uuid, watched_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_uuid, video_uuid) DO UPDATE SET watched_at = EXCLUDED.watched_at
		`
		if _, err := tx.ExecContext(ctx, query, viewerUUID, videoUUID); err != nil {
			return util.LogError("[VideoRepo] не удалось обновить историю просмотров", err)
		}
		return nil
	})
}

// ChannelStats : агрегаты канала для dashboard
func (r *VideoRepository) ChannelStats(ctx context.Context, ownerUUID string) (*model.ChannelStats, error) {
	query := `
		SELECT $1::uuid::text AS channel_uuid,
			(SELECT COUNT(*) FROM videos WHERE owner_uuid = $1) AS total_videos,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_uuid = $1) AS total_views,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_uuid = $1) AS total_subscribers,
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.uuid = l.video_uuid WHERE v.owner_uuid = $1) AS total_likes
	`
	var stats model.ChannelStats
	if err := sqlx.GetContext(ctx, r.DB, &stats, query, ownerUUID); err != nil {
		return nil, util.LogError("[VideoRepo] не удалось посчитать статистику канала", err)
	}
	return &stats, nil
}
