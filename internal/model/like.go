package model

// LikeTarget : сущность, которую можно лайкнуть
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

type LikeToggleResult struct {
	TargetUUID string     `json:"target_uuid"`
	Target     LikeTarget `json:"target"`
	Liked      bool       `json:"is_liked"`
}
