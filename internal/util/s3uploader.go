package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// S3Uploader : загрузка больших файлов (видео) по pre-signed PUT URL в фоне
type S3Uploader struct {
	client *http.Client
	wg     sync.WaitGroup
}

func NewS3Uploader(timeout time.Duration) *S3Uploader {
	return &S3Uploader{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// UploadFileAsync : асинхронная загрузка файла, временный файл удаляется после попытки.
// Канал закрывается по завершении, ошибка (если была) приходит до закрытия.
func (u *S3Uploader) UploadFileAsync(ctx context.Context, presignedURL string, filePath string, contentType string) <-chan error {
	result := make(chan error, 1)
	u.wg.Add(1)

	go func() {
		defer u.wg.Done()
		defer close(result)

		if err := u.uploadFile(ctx, presignedURL, filePath, contentType); err != nil {
			result <- fmt.Errorf("ошибка загрузки %s: %w", filepath.Base(filePath), err)
		}
	}()

	return result
}

// uploadFile синхронная реализация загрузки
func (u *S3Uploader) uploadFile(ctx context.Context, presignedURL string, filePath string, contentType string) error {
	defer os.Remove(filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, file)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	if contentType == "" {
		contentType = ContentTypeFor(filePath)
	}
	req.ContentLength = fileInfo.Size()
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ошибка загрузки: статус %d, ответ: %s", resp.StatusCode, string(body))
	}

	return nil
}

// ContentTypeFor определяет MIME type по расширению файла
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Wait ожидание завершения всех загрузок, вызывается при остановке сервера
func (u *S3Uploader) Wait() {
	u.wg.Wait()
}
