package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type VideoService struct {
	videoRepository ports.VideoRepository
	storage         ports.MediaStorage
	cache           ports.CacheRepository
	presignTTL      time.Duration
}

// NewVideoService : cache может быть nil, тогда статистика канала не инвалидируется
func NewVideoService(
	videoRepository ports.VideoRepository,
	storage ports.MediaStorage,
	cache ports.CacheRepository,
	presignTTL time.Duration,
) *VideoService {
	return &VideoService{
		videoRepository: videoRepository,
		storage:         storage,
		cache:           cache,
		presignTTL:      presignTTL,
	}
}

func (s *VideoService) ListVideos(ctx context.Context, query model.VideoListQuery) ([]model.VideoDetails, error) {
	query.Page, query.Limit = normalizePage(query.Page, query.Limit)
	query.Query = strings.TrimSpace(query.Query)

	videos, err := s.videoRepository.ListPublished(ctx, query)
	if err != nil {
		return nil, apperror.Internal("failed to fetch videos", err)
	}
	return videos, nil
}

// PublishVideo : сохраняет превью сразу, а файл видео клиент получает как pre-signed PUT URL
func (s *VideoService) PublishVideo(ctx context.Context, ownerUUID string, input *model.PublishVideoInput) (*model.PublishedVideo, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperror.BadRequest("title and description are required")
	}
	if input.Filename == "" {
		return nil, apperror.BadRequest("video file is required")
	}
	if input.Thumbnail == nil {
		return nil, apperror.BadRequest("thumbnail is required")
	}

	videoKey := mediaKey(ownerUUID, "video", input.Filename)
	putURL, err := s.storage.GeneratePresignedPutURL(ctx, videoKey, s.presignTTL)
	if err != nil {
		return nil, apperror.Internal("failed to prepare video upload", err)
	}

	thumbnailURL, err := s.storage.Upload(ctx, mediaKey(ownerUUID, "thumbnail", input.Thumbnail.Filename), input.Thumbnail)
	if err != nil {
		return nil, apperror.Internal("failed to upload thumbnail", err)
	}

	video, err := s.videoRepository.CreateVideo(ctx, &model.Video{
		UUID:        uuid.New().String(),
		OwnerUUID:   ownerUUID,
		VideoFile:   s.storage.ObjectURL(videoKey),
		Thumbnail:   thumbnailURL,
		Title:       title,
		Description: description,
		Duration:    input.Duration,
		IsPublished: false,
	})
	if err != nil {
		deleteMediaQuietly(ctx, s.storage, thumbnailURL)
		return nil, apperror.Internal("something went wrong while publishing the video", err)
	}

	s.invalidateStats(ctx, ownerUUID)
	zap.L().Info("[VideoService] опубликовано видео",
		zap.String("video_uuid", video.UUID),
		zap.String("owner_uuid", ownerUUID),
	)
	return &model.PublishedVideo{Video: video, PutURL: putURL}, nil
}

// GetVideo : неопубликованное видео видит только владелец, каждый просмотр пишется в историю
func (s *VideoService) GetVideo(ctx context.Context, videoUUID, viewerUUID string) (*model.VideoDetails, error) {
	details, err := s.videoRepository.GetDetails(ctx, videoUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("video does not exist")
		}
		return nil, apperror.Internal("failed to fetch video", err)
	}
	if !details.IsPublished && details.OwnerUUID != viewerUUID {
		return nil, apperror.NotFound("video does not exist")
	}

	if viewerUUID != "" {
		if err := s.videoRepository.RecordView(ctx, videoUUID, viewerUUID); err != nil {
			zap.L().Warn("[VideoService] не удалось записать просмотр", zap.String("video_uuid", videoUUID), zap.Error(err))
		} else {
			details.Views++
		}
	}
	return details, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, ownerUUID, videoUUID string, input *model.UpdateVideoInput) (*model.Video, error) {
	video, err := s.ownedVideo(ctx, ownerUUID, videoUUID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" && description == "" && input.Thumbnail == nil {
		return nil, apperror.BadRequest("nothing to update")
	}
	if title != "" {
		video.Title = title
	}
	if description != "" {
		video.Description = description
	}

	oldThumbnail := ""
	if input.Thumbnail != nil {
		thumbnailURL, err := s.storage.Upload(ctx, mediaKey(ownerUUID, "thumbnail", input.Thumbnail.Filename), input.Thumbnail)
		if err != nil {
			return nil, apperror.Internal("failed to upload thumbnail", err)
		}
		oldThumbnail, video.Thumbnail = video.Thumbnail, thumbnailURL
	}

	updated, err := s.videoRepository.UpdateVideo(ctx, video)
	if err != nil {
		if oldThumbnail != "" {
			deleteMediaQuietly(ctx, s.storage, video.Thumbnail)
		}
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("video does not exist")
		}
		return nil, apperror.Internal("failed to update video", err)
	}

	deleteMediaQuietly(ctx, s.storage, oldThumbnail)
	return updated, nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, ownerUUID, videoUUID string) error {
	video, err := s.ownedVideo(ctx, ownerUUID, videoUUID)
	if err != nil {
		return err
	}

	if err := s.videoRepository.DeleteVideo(ctx, videoUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("video does not exist")
		}
		return apperror.Internal("failed to delete video", err)
	}

	deleteMediaQuietly(ctx, s.storage, video.VideoFile)
	deleteMediaQuietly(ctx, s.storage, video.Thumbnail)
	s.invalidateStats(ctx, ownerUUID)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, ownerUUID, videoUUID string) (bool, error) {
	if _, err := s.ownedVideo(ctx, ownerUUID, videoUUID); err != nil {
		return false, err
	}

	published, err := s.videoRepository.TogglePublish(ctx, videoUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, apperror.NotFound("video does not exist")
		}
		return false, apperror.Internal("failed to toggle publish status", err)
	}
	return published, nil
}

// CompleteUpload : видео публикуется только после успешной загрузки файла,
// при ошибке загрузки остается скрытым
func (s *VideoService) CompleteUpload(ctx context.Context, ownerUUID, videoUUID string, uploadErr error) error {
	if uploadErr != nil {
		zap.L().Warn("[VideoService] файл видео не загружен, видео остается неопубликованным",
			zap.String("video_uuid", videoUUID),
			zap.Error(uploadErr),
		)
		return nil
	}

	if err := s.videoRepository.SetPublished(ctx, videoUUID, true); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("video does not exist")
		}
		return apperror.Internal("failed to publish video", err)
	}

	s.invalidateStats(ctx, ownerUUID)
	return nil
}

func (s *VideoService) ownedVideo(ctx context.Context, ownerUUID, videoUUID string) (*model.Video, error) {
	video, err := s.videoRepository.FindByUUID(ctx, videoUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("video does not exist")
		}
		return nil, apperror.Internal("failed to fetch video", err)
	}
	if video.OwnerUUID != ownerUUID {
		return nil, apperror.Forbidden("you are not the owner of this video")
	}
	return video, nil
}

func (s *VideoService) invalidateStats(ctx context.Context, ownerUUID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteChannelStats(ctx, ownerUUID); err != nil {
		zap.L().Warn("[VideoService] не удалось сбросить кэш статистики", zap.String("owner_uuid", ownerUUID), zap.Error(err))
	}
}

// normalizePage : страницы нумеруются с 1, limit ограничен сверху
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
