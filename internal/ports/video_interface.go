package ports

import (
	"context"

	"videotube-server/internal/model"
)

type VideoRepository interface {
	CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Video, error)
	GetDetails(ctx context.Context, uuid string) (*model.VideoDetails, error)
	ListPublished(ctx context.Context, query model.VideoListQuery) ([]model.VideoDetails, error)
	ListByOwner(ctx context.Context, ownerUUID string) ([]model.VideoDetails, error)
	UpdateVideo(ctx context.Context, video *model.Video) (*model.Video, error)
	TogglePublish(ctx context.Context, uuid string) (bool, error)
	SetPublished(ctx context.Context, uuid string, published bool) error
	DeleteVideo(ctx context.Context, uuid string) error
	RecordView(ctx context.Context, videoUUID, viewerUUID string) error
	ChannelStats(ctx context.Context, ownerUUID string) (*model.ChannelStats, error)
}

type VideoService interface {
	ListVideos(ctx context.Context, query model.VideoListQuery) ([]model.VideoDetails, error)
	PublishVideo(ctx context.Context, ownerUUID string, input *model.PublishVideoInput) (*model.PublishedVideo, error)
	GetVideo(ctx context.Context, videoUUID, viewerUUID string) (*model.VideoDetails, error)
	UpdateVideo(ctx context.Context, ownerUUID, videoUUID string, input *model.UpdateVideoInput) (*model.Video, error)
	DeleteVideo(ctx context.Context, ownerUUID, videoUUID string) error
	TogglePublish(ctx context.Context, ownerUUID, videoUUID string) (bool, error)
	CompleteUpload(ctx context.Context, ownerUUID, videoUUID string, uploadErr error) error
}
