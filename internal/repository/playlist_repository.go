package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

const playlistColumns = `uuid, owner_uuid, name, description, created_at, updated_at`

const playlistSummaryQuery = `
	SELECT p.uuid, p.owner_uuid, p.name, p.description, p.created_at, p.updated_at,
		COUNT(v.uuid) AS total_videos,
		COALESCE(SUM(v.views), 0) AS total_views
	FROM playlists p
	LEFT JOIN playlist_videos pv ON pv.playlist_uuid = p.uuid
	LEFT JOIN videos v ON v.uuid = pv.video_uuid
`

type PlaylistRepository struct {
	*config.Database
}

func NewPlaylistRepository(database *config.Database) *PlaylistRepository {
	return &PlaylistRepository{database}
}

func (r *PlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error) {
	query := `
	INSERT INTO playlists (uuid, owner_uuid, name, description)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + playlistColumns

	var created model.Playlist
	err := r.DB.QueryRowxContext(ctx, query, playlist.UUID, playlist.OwnerUUID, playlist.Name, playlist.Description).StructScan(&created)
	if err != nil {
		return nil, mapError("[PlaylistRepo] ошибка вставки плейлиста в БД", err)
	}
	return &created, nil
}

func (r *PlaylistRepository) FindByUUID(ctx context.Context, uuid string) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := sqlx.GetContext(ctx, r.DB, &playlist, `SELECT `+playlistColumns+` FROM playlists WHERE uuid = $1`, uuid); err != nil {
		return nil, mapError("[PlaylistRepo] плейлист не найден", err)
	}
	return &playlist, nil
}

func (r *PlaylistRepository) GetSummary(ctx context.Context, uuid string) (*model.PlaylistSummary, error) {
	query := playlistSummaryQuery + ` WHERE p.uuid = $1 GROUP BY p.uuid`

	var summary model.PlaylistSummary
	if err := sqlx.GetContext(ctx, r.DB, &summary, query, uuid); err != nil {
		return nil, mapError("[PlaylistRepo] плейлист не найден", err)
	}
	return &summary, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.PlaylistSummary, error) {
	query := playlistSummaryQuery + ` WHERE p.owner_uuid = $1 GROUP BY p.uuid ORDER BY p.created_at DESC`

	playlists := []model.PlaylistSummary{}
	if err := sqlx.SelectContext(ctx, r.DB, &playlists, query, ownerUUID); err != nil {
		return nil, util.LogError("[PlaylistRepo] не удалось получить плейлисты пользователя", err)
	}
	return playlists, nil
}

// ListVideos : опубликованные видео плейлиста в порядке добавления
func (r *PlaylistRepository) ListVideos(ctx context.Context, playlistUUID string) ([]model.Video, error) {
	query := `
		SELECT v.uuid, v.owner_uuid, v.video_file, v.thumbnail, v.title, v.description,
			v.duration, v.views, v.is_published, v.created_at, v.updated_at
		FROM playlist_videos pv
		JOIN videos v ON v.uuid = pv.video_uuid
		WHERE pv.playlist_uuid = $1 AND v.is_published = TRUE
		ORDER BY pv.added_at
	`
	videos := []model.Video{}
	if err := sqlx.SelectContext(ctx, r.DB, &videos, query, playlistUUID); err != nil {
		return nil, util.LogError("[PlaylistRepo] не удалось получить видео плейлиста", err)
	}
	return videos, nil
}

func (r *PlaylistRepository) UpdatePlaylist(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error) {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = NOW()
		WHERE uuid = $1
		RETURNING ` + playlistColumns

	var updated model.Playlist
	if err := r.DB.QueryRowxContext(ctx, query, playlist.UUID, playlist.Name, playlist.Description).StructScan(&updated); err != nil {
		return nil, mapError("[PlaylistRepo] не удалось обновить плейлист", err)
	}
	return &updated, nil
}

func (r *PlaylistRepository) DeletePlaylist(ctx context.Context, uuid string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM playlists WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[PlaylistRepo] не удалось удалить плейлист", err)
	}
	return requireAffected(result, "[PlaylistRepo] плейлист для удаления не найден")
}

// AddVideo : false, если видео уже было в плейлисте
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistUUID, videoUUID string) (bool, error) {
	query := `
		INSERT INTO playlist_videos (playlist_uuid, video_uuid)
		VALUES ($1, $2)
		ON CONFLICT (playlist_uuid, video_uuid) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, playlistUUID, videoUUID)
	if err != nil {
		return false, util.LogError("[PlaylistRepo] не удалось добавить видео в плейлист", err)
	}
	added, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[PlaylistRepo] не удалось проверить добавление видео", err)
	}
	return added > 0, nil
}

// RemoveVideo : false, если видео в плейлисте не было
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistUUID, videoUUID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM playlist_videos WHERE playlist_uuid = $1 AND video_uuid = $2`,
		playlistUUID, videoUUID,
	)
	if err != nil {
		return false, util.LogError("[PlaylistRepo] не удалось удалить видео из плейлиста", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[PlaylistRepo] не удалось проверить удаление видео", err)
	}
	return removed > 0, nil
}
