package service

import (
	"context"
	"errors"
	"fmt"

	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

type LikeService struct {
	likeRepository    ports.LikeRepository
	videoRepository   ports.VideoRepository
	commentRepository ports.CommentRepository
	tweetRepository   ports.TweetRepository
}

func NewLikeService(
	likeRepository ports.LikeRepository,
	videoRepository ports.VideoRepository,
	commentRepository ports.CommentRepository,
	tweetRepository ports.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepository:    likeRepository,
		videoRepository:   videoRepository,
		commentRepository: commentRepository,
		tweetRepository:   tweetRepository,
	}
}

// ToggleLike : повторный вызов снимает лайк
func (s *LikeService) ToggleLike(ctx context.Context, userUUID string, target model.LikeTarget, targetUUID string) (*model.LikeToggleResult, error) {
	if err := s.targetExists(ctx, target, targetUUID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepository.ToggleLike(ctx, target, targetUUID, userUUID)
	if err != nil {
		return nil, apperror.Internal("failed to toggle like", err)
	}
	return &model.LikeToggleResult{TargetUUID: targetUUID, Target: target, Liked: liked}, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userUUID string) ([]model.VideoDetails, error) {
	videos, err := s.likeRepository.ListLikedVideos(ctx, userUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch liked videos", err)
	}
	return videos, nil
}

func (s *LikeService) targetExists(ctx context.Context, target model.LikeTarget, targetUUID string) error {
	var err error
	switch target {
	case model.LikeTargetVideo:
		_, err = s.videoRepository.FindByUUID(ctx, targetUUID)
	case model.LikeTargetComment:
		_, err = s.commentRepository.FindByUUID(ctx, targetUUID)
	case model.LikeTargetTweet:
		_, err = s.tweetRepository.FindByUUID(ctx, targetUUID)
	default:
		return apperror.BadRequest(fmt.Sprintf("unknown like target %q", target))
	}

	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound(fmt.Sprintf("%s does not exist", target))
	} else if err != nil {
		return apperror.Internal("failed to fetch like target", err)
	}
	return nil
}
