package handler

import (
	"net/http"

	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

type CommentHandler struct {
	ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService}
}

// ListVideoComments godoc
// @Summary Комментарии к видео
// @Tags Comments
// @Produce json
// @Param videoId path string true "UUID видео"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.APIResponse{data=[]model.CommentDetails}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/comments/{videoId} [get]
func (h *CommentHandler) ListVideoComments(w http.ResponseWriter, r *http.Request) {
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}
	page, limit := pageParams(r)

	comments, err := h.CommentService.ListVideoComments(r.Context(), videoUUID, page, limit)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comments, "Comments fetched successfully")
}

// AddComment godoc
// @Summary Новый комментарий
// @Tags Comments
// @Accept json
// @Produce json
// @Param videoId path string true "UUID видео"
// @Param body body requestresponse.ContentRequest true "Текст комментария"
// @Success 201 {object} requestresponse.APIResponse{data=model.Comment}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Видео не найдено"
// @Security ApiKeyAuth
// @Router /api/v1/comments/{videoId} [post]
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return
	}

	var req requestresponse.ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), user.UUID, videoUUID, req.Content)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment godoc
// @Summary Редактирование комментария
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentId path string true "UUID комментария"
// @Param body body requestresponse.ContentRequest true "Новый текст"
// @Success 200 {object} requestresponse.APIResponse{data=model.Comment}
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/comments/c/{commentId} [patch]
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	commentUUID, ok := uuidParam(w, r, "commentId")
	if !ok {
		return
	}

	var req requestresponse.ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), user.UUID, commentUUID, req.Content)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment godoc
// @Summary Удаление комментария
// @Tags Comments
// @Produce json
// @Param commentId path string true "UUID комментария"
// @Success 200 {object} requestresponse.APIResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/comments/c/{commentId} [delete]
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	commentUUID, ok := uuidParam(w, r, "commentId")
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), user.UUID, commentUUID); err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Comment deleted successfully")
}
