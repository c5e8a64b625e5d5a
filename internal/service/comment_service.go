package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

type CommentService struct {
	commentRepository ports.CommentRepository
	videoRepository   ports.VideoRepository
}

func NewCommentService(commentRepository ports.CommentRepository, videoRepository ports.VideoRepository) *CommentService {
	return &CommentService{
		commentRepository: commentRepository,
		videoRepository:   videoRepository,
	}
}

func (s *CommentService) ListVideoComments(ctx context.Context, videoUUID string, page, limit int) ([]model.CommentDetails, error) {
	page, limit = normalizePage(page, limit)

	comments, err := s.commentRepository.ListByVideo(ctx, videoUUID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperror.Internal("failed to fetch comments", err)
	}
	return comments, nil
}

func (s *CommentService) AddComment(ctx context.Context, ownerUUID, videoUUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}

	if _, err := s.videoRepository.FindByUUID(ctx, videoUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("video does not exist")
		}
		return nil, apperror.Internal("failed to fetch video", err)
	}

	comment, err := s.commentRepository.CreateComment(ctx, &model.Comment{
		UUID:      uuid.New().String(),
		VideoUUID: videoUUID,
		OwnerUUID: ownerUUID,
		Content:   content,
	})
	if err != nil {
		return nil, apperror.Internal("failed to add comment", err)
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, ownerUUID, commentUUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}
	if err := s.checkOwner(ctx, ownerUUID, commentUUID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepository.UpdateComment(ctx, commentUUID, content)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("comment does not exist")
		}
		return nil, apperror.Internal("failed to update comment", err)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, ownerUUID, commentUUID string) error {
	if err := s.checkOwner(ctx, ownerUUID, commentUUID); err != nil {
		return err
	}

	if err := s.commentRepository.DeleteComment(ctx, commentUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("comment does not exist")
		}
		return apperror.Internal("failed to delete comment", err)
	}
	return nil
}

func (s *CommentService) checkOwner(ctx context.Context, ownerUUID, commentUUID string) error {
	comment, err := s.commentRepository.FindByUUID(ctx, commentUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("comment does not exist")
		}
		return apperror.Internal("failed to fetch comment", err)
	}
	if comment.OwnerUUID != ownerUUID {
		return apperror.Forbidden("you are not the owner of this comment")
	}
	return nil
}
