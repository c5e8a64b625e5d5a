package model

import "time"

type Video struct {
	UUID        string    `db:"uuid" json:"uuid"`
	OwnerUUID   string    `db:"owner_uuid" json:"owner_uuid"`
	VideoFile   string    `db:"video_file" json:"video_file"`
	Thumbnail   string    `db:"thumbnail" json:"thumbnail"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Duration    float64   `db:"duration" json:"duration"`
	Views       int64     `db:"views" json:"views"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// VideoDetails : видео вместе с владельцем и количеством лайков
type VideoDetails struct {
	Video
	Owner      UserSummary `db:"owner" json:"owner"`
	LikesCount int64       `db:"likes_count" json:"likes_count"`
}

type VideoListQuery struct {
	Page      int
	Limit     int
	Query     string
	OwnerUUID string
	SortBy    string
	SortDesc  bool
}

type PublishVideoInput struct {
	Title       string
	Description string
	Duration    float64
	Filename    string
	ContentType string
	Thumbnail   *Upload
}

type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *Upload
}

// PublishedVideo : созданная запись и pre-signed URL, куда загружается файл видео
type PublishedVideo struct {
	Video  *Video `json:"video"`
	PutURL string `json:"put_url"`
}
