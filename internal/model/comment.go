package model

import "time"

type Comment struct {
	UUID      string    `db:"uuid" json:"uuid"`
	VideoUUID string    `db:"video_uuid" json:"video_uuid"`
	OwnerUUID string    `db:"owner_uuid" json:"owner_uuid"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CommentDetails struct {
	Comment
	Owner      UserSummary `db:"owner" json:"owner"`
	LikesCount int64       `db:"likes_count" json:"likes_count"`
}
