package model

type ChannelStats struct {
	ChannelUUID      string `db:"channel_uuid" json:"channel_uuid"`
	TotalVideos      int64  `db:"total_videos" json:"total_videos"`
	TotalViews       int64  `db:"total_views" json:"total_views"`
	TotalSubscribers int64  `db:"total_subscribers" json:"total_subscribers"`
	TotalLikes       int64  `db:"total_likes" json:"total_likes"`
}
