package ports

import (
	"context"

	"videotube-server/internal/model"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoUUID string, limit, offset int) ([]model.CommentDetails, error)
	UpdateComment(ctx context.Context, uuid, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, uuid string) error
}

type CommentService interface {
	ListVideoComments(ctx context.Context, videoUUID string, page, limit int) ([]model.CommentDetails, error)
	AddComment(ctx context.Context, ownerUUID, videoUUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, ownerUUID, commentUUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, ownerUUID, commentUUID string) error
}
