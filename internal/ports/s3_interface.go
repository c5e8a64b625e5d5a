package ports

import (
	"context"
	"time"

	"videotube-server/internal/model"
)

// MediaStorage : S3 для аватаров, обложек, превью и файлов видео
type MediaStorage interface {
	Upload(ctx context.Context, key string, upload *model.Upload) (string, error)
	Delete(ctx context.Context, ref string) error
	GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error)
	ObjectURL(key string) string
}
