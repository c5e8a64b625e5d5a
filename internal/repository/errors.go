package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"videotube-server/internal/apperror"
	"videotube-server/internal/util"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

// mapError : sql.ErrNoRows -> apperror.ErrNotFound, нарушение уникальности -> apperror.ErrConflict,
// остальное логируется
func mapError(message string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", message, apperror.ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", message, apperror.ErrConflict)
	default:
		return util.LogError(message, err)
	}
}

func requireAffected(result sql.Result, message string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("не удалось проверить количество измененных строк", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", message, apperror.ErrNotFound)
	}
	return nil
}

// videoDetailsColumns : видео + владелец + количество лайков, алиасы v и u
const videoDetailsColumns = `
	v.uuid, v.owner_uuid, v.video_file, v.thumbnail, v.title, v.description,
	v.duration, v.views, v.is_published, v.created_at, v.updated_at,
	u.uuid AS "owner.uuid", u.username AS "owner.username",
	u.full_name AS "owner.full_name", u.avatar AS "owner.avatar",
	(SELECT COUNT(*) FROM likes l WHERE l.video_uuid = v.uuid) AS likes_count`
