package model

import "time"

type Tweet struct {
	UUID      string    `db:"uuid" json:"uuid"`
	OwnerUUID string    `db:"owner_uuid" json:"owner_uuid"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type TweetDetails struct {
	Tweet
	Owner      UserSummary `db:"owner" json:"owner"`
	LikesCount int64       `db:"likes_count" json:"likes_count"`
}
