package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

const commentColumns = `uuid, video_uuid, owner_uuid, content, created_at, updated_at`

type CommentRepository struct {
	*config.Database
}

func NewCommentRepository(database *config.Database) *CommentRepository {
	return &CommentRepository{database}
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
	INSERT INTO comments (uuid, video_uuid, owner_uuid, content)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + commentColumns

	var created model.Comment
	err := r.DB.QueryRowxContext(ctx, query, comment.UUID, comment.VideoUUID, comment.OwnerUUID, comment.Content).StructScan(&created)
	if err != nil {
		return nil, mapError("[CommentRepo] ошибка вставки комментария в БД", err)
	}
	return &created, nil
}

func (r *CommentRepository) FindByUUID(ctx context.Context, uuid string) (*model.Comment, error) {
	var comment model.Comment
	if err := sqlx.GetContext(ctx, r.DB, &comment, `SELECT `+commentColumns+` FROM comments WHERE uuid = $1`, uuid); err != nil {
		return nil, mapError("[CommentRepo] комментарий не найден", err)
	}
	return &comment, nil
}

// ListByVideo : комментарии к видео, новые сверху
func (r *CommentRepository) ListByVideo(ctx context.Context, videoUUID string, limit, offset int) ([]model.CommentDetails, error) {
	query := `
		SELECT c.uuid, c.video_uuid, c.owner_uuid, c.content, c.created_at, c.updated_at,
			u.uuid AS "owner.uuid", u.username AS "owner.username",
			u.full_name AS "owner.full_name", u.avatar AS "owner.avatar",
			(SELECT COUNT(*) FROM likes l WHERE l.comment_uuid = c.uuid) AS likes_count
		FROM comments c
		JOIN users u ON u.uuid = c.owner_uuid
		WHERE c.video_uuid = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`
	comments := []model.CommentDetails{}
	if err := sqlx.SelectContext(ctx, r.DB, &comments, query, videoUUID, limit, offset); err != nil {
		return nil, util.LogError("[CommentRepo] не удалось получить комментарии", err)
	}
	return comments, nil
}

func (r *CommentRepository) UpdateComment(ctx context.Context, uuid, content string) (*model.Comment, error) {
	query := `UPDATE comments SET content = $2, updated_at = NOW() WHERE uuid = $1 RETURNING ` + commentColumns

	var updated model.Comment
	if err := r.DB.QueryRowxContext(ctx, query, uuid, content).StructScan(&updated); err != nil {
		return nil, mapError("[CommentRepo] не удалось обновить комментарий", err)
	}
	return &updated, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, uuid string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[CommentRepo] не удалось удалить комментарий", err)
	}
	return requireAffected(result, "[CommentRepo] комментарий для удаления не найден")
}
