package service

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"videotube-server/internal/ports"
)

// mediaKey : путь объекта в бакете, users/<uuid>/<kind>/<имя>-<8 символов>.<расширение>
func mediaKey(ownerUUID, kind, filename string) string {
	fileExt := strings.ToLower(filepath.Ext(filename))
	fileName := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if fileName == "" || fileName == "." {
		fileName = kind
	}
	return fmt.Sprintf("users/%s/%s/%s-%s%s",
		ownerUUID,
		kind,
		url.PathEscape(fileName),
		uuid.New().String()[:8],
		fileExt,
	)
}

// deleteMediaQuietly : ошибка удаления старого файла не должна ломать основную операцию
func deleteMediaQuietly(ctx context.Context, storage ports.MediaStorage, ref string) {
	if ref == "" {
		return
	}
	if err := storage.Delete(ctx, ref); err != nil {
		zap.L().Warn("не удалось удалить файл из хранилища", zap.String("ref", ref), zap.Error(err))
	}
}
