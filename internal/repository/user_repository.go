package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"videotube-server/config"
	"videotube-server/internal/model"
	"videotube-server/internal/util"
)

const userColumns = `uuid, username, email, full_name, avatar, cover_image, password_hash, refresh_token_hash, created_at, updated_at`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя, занятый username/email -> apperror.ErrConflict
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, username, email, full_name, avatar, cover_image, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns

	var createdUser model.User
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.FullName,
		user.Avatar,
		user.CoverImage,
		user.PasswordHash,
	).StructScan(&createdUser)
	if err != nil {
		return nil, mapError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return &createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1`
	var user model.User
	if err := sqlx.GetContext(ctx, r.DB, &user, query, uuid); err != nil {
		return nil, mapError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByUsernameOrEmail : пустое значение не участвует в поиске
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
		LIMIT 1
	`
	var user model.User
	if err := sqlx.GetContext(ctx, r.DB, &user, query, username, email); err != nil {
		return nil, mapError("[UserRepo] не удалось найти пользователя по username/email", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	if err := sqlx.GetContext(ctx, r.DB, &exists, query, username, email); err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// UpdateAccount : пустые значения оставляют поле без изменений
func (r *UserRepository) UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE(NULLIF($2, ''), full_name),
			email = COALESCE(NULLIF($3, ''), email),
			updated_at = NOW()
		WHERE uuid = $1
		RETURNING ` + userColumns

	var user model.User
	if err := r.DB.QueryRowxContext(ctx, query, uuid, fullName, email).StructScan(&user); err != nil {
		return nil, mapError("[UserRepo] не удалось обновить профиль", err)
	}
	return &user, nil
}

// UpdatePassword : меняет пароль пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE uuid = $1`
	result, err := r.DB.ExecContext(ctx, query, uuid, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}
	return requireAffected(result, "[UserRepo] пользователь для смены пароля не найден")
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, uuid, avatarURL string) (*model.User, error) {
	return r.updateMediaColumn(ctx, "avatar", uuid, avatarURL)
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, uuid, coverImageURL string) (*model.User, error) {
	return r.updateMediaColumn(ctx, "cover_image", uuid, coverImageURL)
}

// column приходит только из констант выше
func (r *UserRepository) updateMediaColumn(ctx context.Context, column, uuid, url string) (*model.User, error) {
	query := fmt.Sprintf(`UPDATE users SET %s = $2, updated_at = NOW() WHERE uuid = $1 RETURNING %s`, column, userColumns)

	var user model.User
	if err := r.DB.QueryRowxContext(ctx, query, uuid, url).StructScan(&user); err != nil {
		return nil, mapError("[UserRepo] не удалось обновить "+column, err)
	}
	return &user, nil
}

// SetRefreshToken : безусловно записывает хэш нового refresh токена (вход в систему)
func (r *UserRepository) SetRefreshToken(ctx context.Context, uuid, tokenHash string) error {
	query := `UPDATE users SET refresh_token_hash = $2 WHERE uuid = $1`
	result, err := r.DB.ExecContext(ctx, query, uuid, tokenHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось сохранить refresh токен", err)
	}
	return requireAffected(result, "[UserRepo] пользователь для сохранения refresh токена не найден")
}

// SwapRefreshToken : заменяет хэш только если в БД все еще лежит expectedHash.
// false означает, что токен уже был использован (или отозван) параллельным запросом.
func (r *UserRepository) SwapRefreshToken(ctx context.Context, uuid, expectedHash, nextHash string) (bool, error) {
	query := `UPDATE users SET refresh_token_hash = $3 WHERE uuid = $1 AND refresh_token_hash = $2`

	result, err := r.DB.ExecContext(ctx, query, uuid, expectedHash, nextHash)
	if err != nil {
		return false, util.LogError("[UserRepo] не удалось обновить refresh токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[UserRepo] не удалось проверить, обновлен ли токен", err)
	}
	return rowsAffected == 1, nil
}

// ClearRefreshToken : идемпотентен, повторный выход не ошибка
func (r *UserRepository) ClearRefreshToken(ctx context.Context, uuid string) error {
	query := `UPDATE users SET refresh_token_hash = NULL WHERE uuid = $1`
	if _, err := r.DB.ExecContext(ctx, query, uuid); err != nil {
		return util.LogError("[UserRepo] не удалось удалить refresh токен", err)
	}
	return nil
}

// GetChannelProfile : профиль канала со счетчиками подписок относительно viewerUUID
func (r *UserRepository) GetChannelProfile(ctx context.Context, username, viewerUUID string) (*model.ChannelProfile, error) {
	query := `
		SELECT u.uuid, u.username, u.email, u.full_name, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_uuid = u.uuid) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_uuid = u.uuid) AS subscribed_to_count,
			EXISTS (
				SELECT 1 FROM subscriptions s
				WHERE s.channel_uuid = u.uuid AND s.subscriber_uuid::text = $2
			) AS is_subscribed
		FROM users u
		WHERE u.username = $1
	`
	var profile model.ChannelProfile
	if err := sqlx.GetContext(ctx, r.DB, &profile, query, username, viewerUUID); err != nil {
		return nil, mapError("[UserRepo] не удалось найти канал", err)
	}
	return &profile, nil
}

// GetWatchHistory : просмотренные видео, последние сверху
func (r *UserRepository) GetWatchHistory(ctx context.Context, uuid string) ([]model.VideoDetails, error) {
	query := `
		SELECT ` + videoDetailsColumns + `
		FROM watch_history h
		JOIN videos v ON v.uuid = h.video_uuid
		JOIN users u ON u.uuid = v.owner_uuid
		WHERE h.user_uuid = $1
		ORDER BY h.watched_at DESC
	`
	history := []model.VideoDetails{}
	if err := sqlx.SelectContext(ctx, r.DB, &history, query, uuid); err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить историю просмотров", err)
	}
	return history, nil
}
