package requestresponse

// PublishVideoRequest : текстовые поля multipart формы публикации видео
type PublishVideoRequest struct {
	Title       string  `validate:"required,max=200"`
	Description string  `validate:"required,max=5000"`
	Duration    float64 `validate:"gte=0"`
}

// UpdateVideoRequest : поля multipart формы обновления видео, все опциональны
type UpdateVideoRequest struct {
	Title       string `validate:"omitempty,max=200"`
	Description string `validate:"omitempty,max=5000"`
}

type TogglePublishData struct {
	VideoUUID   string `json:"video_uuid"`
	IsPublished bool   `json:"is_published"`
}
