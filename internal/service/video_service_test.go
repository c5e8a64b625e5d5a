package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/service"
)

const presignTTL = 15 * time.Minute

func TestVideoService_PublishVideo(t *testing.T) {
	ctx := context.Background()
	thumbnail := &model.Upload{Filename: "thumb.jpg", Body: strings.NewReader("jpg")}

	tests := []struct {
		name        string
		input       *model.PublishVideoInput
		setupMocks  func(v *MockVideoRepository, s *MockMediaStorage, c *MockCacheRepository)
		expectKind  apperror.Kind
		expectError string
	}{
		{
			name:        "missing title",
			input:       &model.PublishVideoInput{Description: "d", Filename: "a.mp4", Thumbnail: thumbnail},
			expectKind:  apperror.KindBadRequest,
			expectError: "title and description are required",
		},
		{
			name:        "missing video file",
			input:       &model.PublishVideoInput{Title: "t", Description: "d", Thumbnail: thumbnail},
			expectKind:  apperror.KindBadRequest,
			expectError: "video file is required",
		},
		{
			name:        "missing thumbnail",
			input:       &model.PublishVideoInput{Title: "t", Description: "d", Filename: "a.mp4"},
			expectKind:  apperror.KindBadRequest,
			expectError: "thumbnail is required",
		},
		{
			name:  "insert fails removes thumbnail",
			input: &model.PublishVideoInput{Title: "t", Description: "d", Filename: "a.mp4", Thumbnail: thumbnail},
			setupMocks: func(v *MockVideoRepository, s *MockMediaStorage, c *MockCacheRepository) {
				s.On("GeneratePresignedPutURL", ctx, mock.Anything, presignTTL).Return("https://put", nil)
				s.On("Upload", ctx, mock.Anything, thumbnail).Return("https://cdn/thumb.jpg", nil)
				s.On("ObjectURL", mock.Anything).Return("https://cdn/a.mp4")
				v.On("CreateVideo", ctx, mock.Anything).Return(nil, errors.New("db down"))
				s.On("Delete", ctx, "https://cdn/thumb.jpg").Return(nil)
			},
			expectKind:  apperror.KindInternal,
			expectError: "something went wrong while publishing the video",
		},
		{
			name:  "success",
			input: &model.PublishVideoInput{Title: " t ", Description: "d", Duration: 12.5, Filename: "a.mp4", Thumbnail: thumbnail},
			setupMocks: func(v *MockVideoRepository, s *MockMediaStorage, c *MockCacheRepository) {
				s.On("GeneratePresignedPutURL", ctx, mock.Anything, presignTTL).Return("https://put", nil)
				s.On("Upload", ctx, mock.Anything, thumbnail).Return("https://cdn/thumb.jpg", nil)
				s.On("ObjectURL", mock.Anything).Return("https://cdn/a.mp4")
				v.On("CreateVideo", ctx, mock.MatchedBy(func(video *model.Video) bool {
					return video.Title == "t" && video.OwnerUUID == "owner" && !video.IsPublished &&
						video.VideoFile == "https://cdn/a.mp4" && video.Duration == 12.5
				})).Return(&model.Video{UUID: "video-1", OwnerUUID: "owner"}, nil)
				c.On("DeleteChannelStats", ctx, "owner").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videoRepo := new(MockVideoRepository)
			storage := new(MockMediaStorage)
			cache := new(MockCacheRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(videoRepo, storage, cache)
			}

			videoService := service.NewVideoService(videoRepo, storage, cache, presignTTL)
			published, err := videoService.PublishVideo(ctx, "owner", tt.input)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Equal(t, tt.expectKind, apperror.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "video-1", published.Video.UUID)
				assert.Equal(t, "https://put", published.PutURL)
			}

			videoRepo.AssertExpectations(t)
			storage.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestVideoService_GetVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("records view", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetDetails", ctx, "video-1").Return(&model.VideoDetails{
			Video: model.Video{UUID: "video-1", OwnerUUID: "owner", Views: 4, IsPublished: true},
		}, nil)
		videoRepo.On("RecordView", ctx, "video-1", "viewer").Return(nil)

		videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
		details, err := videoService.GetVideo(ctx, "video-1", "viewer")

		require.NoError(t, err)
		assert.Equal(t, int64(5), details.Views)
		videoRepo.AssertExpectations(t)
	})

	t.Run("unpublished hidden from others", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetDetails", ctx, "video-1").Return(&model.VideoDetails{
			Video: model.Video{UUID: "video-1", OwnerUUID: "owner"},
		}, nil)

		videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
		_, err := videoService.GetVideo(ctx, "video-1", "viewer")

		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		videoRepo.AssertNotCalled(t, "RecordView", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing video", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("GetDetails", ctx, "nope").Return(nil, apperror.ErrNotFound)

		videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
		_, err := videoService.GetVideo(ctx, "nope", "viewer")

		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestVideoService_OwnerOnlyMutations(t *testing.T) {
	ctx := context.Background()
	video := &model.Video{UUID: "video-1", OwnerUUID: "owner", VideoFile: "https://cdn/a.mp4", Thumbnail: "https://cdn/t.jpg"}

	t.Run("update by stranger", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("FindByUUID", ctx, "video-1").Return(video, nil)

		videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
		_, err := videoService.UpdateVideo(ctx, "stranger", "video-1", &model.UpdateVideoInput{Title: "new"})

		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("toggle by stranger", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		videoRepo.On("FindByUUID", ctx, "video-1").Return(video, nil)

		videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
		_, err := videoService.TogglePublish(ctx, "stranger", "video-1")

		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		videoRepo.AssertNotCalled(t, "TogglePublish", mock.Anything, mock.Anything)
	})

	t.Run("delete removes media and stats", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		storage := new(MockMediaStorage)
		cache := new(MockCacheRepository)
		videoRepo.On("FindByUUID", ctx, "video-1").Return(video, nil)
		videoRepo.On("DeleteVideo", ctx, "video-1").Return(nil)
		storage.On("Delete", ctx, "https://cdn/a.mp4").Return(nil)
		storage.On("Delete", ctx, "https://cdn/t.jpg").Return(nil)
		cache.On("DeleteChannelStats", ctx, "owner").Return(errors.New("redis down"))

		videoService := service.NewVideoService(videoRepo, storage, cache, presignTTL)
		err := videoService.DeleteVideo(ctx, "owner", "video-1")

		assert.NoError(t, err)
		videoRepo.AssertExpectations(t)
		storage.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("update title keeps thumbnail", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		stored := *video
		videoRepo.On("FindByUUID", ctx, "video-1").Return(&stored, nil)
		videoRepo.On("UpdateVideo", ctx, mock.MatchedBy(func(v *model.Video) bool {
			return v.Title == "new" && v.Thumbnail == "https://cdn/t.jpg"
		})).Return(&model.Video{UUID: "video-1", Title: "new"}, nil)

		videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
		updated, err := videoService.UpdateVideo(ctx, "owner", "video-1", &model.UpdateVideoInput{Title: "new"})

		require.NoError(t, err)
		assert.Equal(t, "new", updated.Title)
		videoRepo.AssertExpectations(t)
	})
}

func TestVideoService_ListVideos_ClampsPaging(t *testing.T) {
	ctx := context.Background()
	videoRepo := new(MockVideoRepository)
	videoRepo.On("ListPublished", ctx, model.VideoListQuery{Page: 1, Limit: 100, Query: "cats"}).
		Return([]model.VideoDetails{}, nil)

	videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), nil, presignTTL)
	videos, err := videoService.ListVideos(ctx, model.VideoListQuery{Page: -2, Limit: 500, Query: " cats "})

	require.NoError(t, err)
	assert.Empty(t, videos)
	videoRepo.AssertExpectations(t)
}

func TestVideoService_CompleteUpload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		uploadErr  error
		setupMocks func(v *MockVideoRepository, c *MockCacheRepository)
		expectKind apperror.Kind
		expectErr  bool
	}{
		{
			name:      "upload failed keeps video hidden",
			uploadErr: errors.New("connection reset"),
		},
		{
			name: "upload succeeded publishes",
			setupMocks: func(v *MockVideoRepository, c *MockCacheRepository) {
				v.On("SetPublished", ctx, "video-1", true).Return(nil)
				c.On("DeleteChannelStats", ctx, "owner").Return(nil)
			},
		},
		{
			name: "video deleted during upload",
			setupMocks: func(v *MockVideoRepository, c *MockCacheRepository) {
				v.On("SetPublished", ctx, "video-1", true).Return(apperror.ErrNotFound)
			},
			expectKind: apperror.KindNotFound,
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videoRepo := new(MockVideoRepository)
			cache := new(MockCacheRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(videoRepo, cache)
			}

			videoService := service.NewVideoService(videoRepo, new(MockMediaStorage), cache, presignTTL)
			err := videoService.CompleteUpload(ctx, "owner", "video-1", tt.uploadErr)

			if tt.expectErr {
				assert.Equal(t, tt.expectKind, apperror.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
			videoRepo.AssertExpectations(t)
			cache.AssertExpectations(t)
			if tt.uploadErr != nil {
				videoRepo.AssertNotCalled(t, "SetPublished", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
