package model

import "time"

type Playlist struct {
	UUID        string    `db:"uuid" json:"uuid"`
	OwnerUUID   string    `db:"owner_uuid" json:"owner_uuid"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type PlaylistSummary struct {
	Playlist
	TotalVideos int64 `db:"total_videos" json:"total_videos"`
	TotalViews  int64 `db:"total_views" json:"total_views"`
}

type PlaylistDetails struct {
	PlaylistSummary
	Owner  UserSummary `json:"owner"`
	Videos []Video     `json:"videos"`
}
