package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"videotube-server/internal/model"
	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

const (
	uploadMonitorTimeout  = 30 * time.Minute
	completeUploadTimeout = 10 * time.Second
)

// VideoUploader : фоновая загрузка файла по pre-signed PUT URL
type VideoUploader interface {
	UploadFileAsync(ctx context.Context, presignedURL string, filePath string, contentType string) <-chan error
}

type VideoHandler struct {
	ports.VideoService
	uploader       VideoUploader
	maxUploadBytes int64
}

func NewVideoHandler(videoService ports.VideoService, uploader VideoUploader, maxUploadBytes int64) *VideoHandler {
	return &VideoHandler{videoService, uploader, maxUploadBytes}
}

// ListVideos godoc
// @Summary Список опубликованных видео
// @Description Поиск по названию и описанию, сортировка и пагинация
// @Tags Videos
// @Produce json
// @Param page query int false "Номер страницы, с 1"
// @Param limit query int false "Размер страницы, до 100"
// @Param query query string false "Строка поиска"
// @Param userId query string false "UUID владельца"
// @Param sortBy query string false "createdAt, views, duration или title"
// @Param sortType query string false "asc или desc"
// @Success 200 {object} requestresponse.APIResponse{data=[]model.VideoDetails}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/videos [get]
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	query := r.URL.Query()

	listQuery := model.VideoListQuery{
		Page:     page,
		Limit:    limit,
		Query:    query.Get("query"),
		SortBy:   query.Get("sortBy"),
		SortDesc: query.Get("sortType") != "asc",
	}
	if ownerUUID := query.Get("userId"); ownerUUID != "" {
		parsed, err := parseUUID(ownerUUID)
		if err != nil {
			sendErrorResponse(w, http.StatusBadRequest, "invalid userId")
			return
		}
		listQuery.OwnerUUID = parsed
	}

	videos, err := h.VideoService.ListVideos(r.Context(), listQuery)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videos, "Videos fetched successfully")
}

// PublishVideo godoc
// @Summary Публикация видео
// @Description Превью загружается сразу, файл видео загружается в S3 в фоне по pre-signed URL. Видео публикуется после успешной загрузки.
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Название"
// @Param description formData string true "Описание"
// @Param duration formData number false "Длительность в секундах"
// @Param video_file formData file true "Файл видео"
// @Param thumbnail formData file true "Превью"
// @Success 202 {object} requestresponse.APIResponse{data=model.Video} "Видео создано, загрузка файла идет"
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse "Файл слишком большой"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/videos [post]
func (h *VideoHandler) PublishVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if !parseMultipartForm(w, r, h.maxUploadBytes) {
		return
	}

	req := requestresponse.PublishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("duration"); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			sendErrorResponse(w, http.StatusBadRequest, "invalid duration")
			return
		}
		req.Duration = duration
	}
	if !validateRequest(w, &req) {
		return
	}

	videoFile, videoHeader, err := r.FormFile("video_file")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "video file is required")
		return
	}
	defer videoFile.Close()

	thumbnail, thumbnailFile, err := formUpload(r, "thumbnail")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid thumbnail file")
		return
	}
	defer closeQuietly(thumbnailFile)

	tmpFile, err := saveTempFile(videoFile, videoHeader.Filename)
	if err != nil {
		zap.L().Error("[VideoHandler] ошибка сохранения временного файла", zap.Error(err))
		sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}

	contentType := videoHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.ContentTypeFor(videoHeader.Filename)
	}

	published, err := h.VideoService.PublishVideo(r.Context(), user.UUID, &model.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Filename:    videoHeader.Filename,
		ContentType: contentType,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		os.Remove(tmpFile)
		util.WriteError(w, r, err)
		return
	}

	// загрузка переживает запрос, поэтому контекст не берется из r
	uploadCtx, cancel := context.WithTimeout(context.Background(), uploadMonitorTimeout)
	result := h.uploader.UploadFileAsync(uploadCtx, published.PutURL, tmpFile, contentType)
	go h.monitorUpload(user.UUID, published.Video.UUID, result, cancel)

	writeJSON(w, http.StatusAccepted, published.Video, "Video created, it will be published once the upload completes")
}

// GetVideo godoc
// @Summary Видео по UUID
// @Description Возвращает видео с владельцем и числом лайков, увеличивает счетчик просмотров и пишет историю
// @Tags Videos
// @Produce json
// @Param videoId path string true "UUID видео"
// @Success 200 {object} requestresponse.APIResponse{data=model.VideoDetails}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/videos/{videoId} [get]
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	video, err := h.VideoService.GetVideo(r.Context(), videoUUID, user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo godoc
// @Summary Обновление видео
// @Description Название, описание и превью, только для владельца
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Param videoId path string true "UUID видео"
// @Param title formData string false "Название"
// @Param description formData string false "Описание"
// @Param thumbnail formData file false "Новое превью"
// @Success 200 {object} requestresponse.APIResponse{data=model.Video}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/videos/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}
	if !parseMultipartForm(w, r, h.maxUploadBytes) {
		return
	}

	req := requestresponse.UpdateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if !validateRequest(w, &req) {
		return
	}

	thumbnail, thumbnailFile, err := formUpload(r, "thumbnail")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid thumbnail file")
		return
	}
	defer closeQuietly(thumbnailFile)

	video, err := h.VideoService.UpdateVideo(r.Context(), user.UUID, videoUUID, &model.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, video, "Video updated successfully")
}

// DeleteVideo godoc
// @Summary Удаление видео
// @Tags Videos
// @Produce json
// @Param videoId path string true "UUID видео"
// @Success 200 {object} requestresponse.APIResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	if err := h.VideoService.DeleteVideo(r.Context(), user.UUID, videoUUID); err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Video deleted successfully")
}

// TogglePublish godoc
// @Summary Переключение публикации
// @Tags Videos
// @Produce json
// @Param videoId path string true "UUID видео"
// @Success 200 {object} requestresponse.APIResponse{data=requestresponse.TogglePublishData}
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	published, err := h.VideoService.TogglePublish(r.Context(), user.UUID, videoUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.TogglePublishData{
		VideoUUID:   videoUUID,
		IsPublished: published,
	}, "Publish status toggled")
}

// saveTempFile : копирует файл из формы во временную директорию
func saveTempFile(src multipart.File, filename string) (string, error) {
	uploadDir := filepath.Join(os.TempDir(), "uploads")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("ошибка создания директории: %w", err)
	}

	dst, err := os.CreateTemp(uploadDir, fmt.Sprintf("%d_*%s", time.Now().UnixNano(), filepath.Ext(filename)))
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}
	return dst.Name(), nil
}

// monitorUpload : ждет окончания фоновой загрузки и публикует видео, если файл дошел до хранилища
func (h *VideoHandler) monitorUpload(ownerUUID, videoUUID string, result <-chan error, cancel context.CancelFunc) {
	defer cancel()

	var uploadErr error
	for err := range result {
		uploadErr = err
		zap.L().Error("[VideoHandler/MonitorUpload] ошибка загрузки видео",
			zap.String("video_uuid", videoUUID),
			zap.Error(err),
		)
	}
	if uploadErr == nil {
		zap.L().Info("[VideoHandler/MonitorUpload] видео успешно загружено", zap.String("video_uuid", videoUUID))
	}

	ctx, cancelComplete := context.WithTimeout(context.Background(), completeUploadTimeout)
	defer cancelComplete()

	if err := h.VideoService.CompleteUpload(ctx, ownerUUID, videoUUID, uploadErr); err != nil {
		zap.L().Error("[VideoHandler/MonitorUpload] не удалось завершить публикацию",
			zap.String("video_uuid", videoUUID),
			zap.Error(err),
		)
	}
}
