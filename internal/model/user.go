package model

import "time"

type User struct {
	UUID             string    `db:"uuid" json:"uuid"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	FullName         string    `db:"full_name" json:"full_name"`
	Avatar           string    `db:"avatar" json:"avatar"`
	CoverImage       string    `db:"cover_image" json:"cover_image"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	RefreshTokenHash *string   `db:"refresh_token_hash" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Sanitized : копия пользователя без хэша пароля и refresh токена
func (u *User) Sanitized() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.RefreshTokenHash = nil
	return &sanitized
}

func (u *User) Summary() UserSummary {
	return UserSummary{UUID: u.UUID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

// UserSummary : публичные данные владельца видео, твита, комментария
type UserSummary struct {
	UUID     string `db:"uuid" json:"uuid"`
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"full_name"`
	Avatar   string `db:"avatar" json:"avatar"`
}

type ChannelProfile struct {
	UUID              string `db:"uuid" json:"uuid"`
	Username          string `db:"username" json:"username"`
	Email             string `db:"email" json:"email"`
	FullName          string `db:"full_name" json:"full_name"`
	Avatar            string `db:"avatar" json:"avatar"`
	CoverImage        string `db:"cover_image" json:"cover_image"`
	SubscribersCount  int64  `db:"subscribers_count" json:"subscribers_count"`
	SubscribedToCount int64  `db:"subscribed_to_count" json:"channels_subscribed_to_count"`
	IsSubscribed      bool   `db:"is_subscribed" json:"is_subscribed"`
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *Upload
	CoverImage *Upload
}
