package handler

import (
	"net/http"

	"videotube-server/internal/model"
	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

type LikeHandler struct {
	ports.LikeService
}

func NewLikeHandler(likeService ports.LikeService) *LikeHandler {
	return &LikeHandler{likeService}
}

// ToggleVideoLike godoc
// @Summary Лайк видео
// @Description Повторный вызов снимает лайк
// @Tags Likes
// @Produce json
// @Param videoId path string true "UUID видео"
// @Success 200 {object} requestresponse.APIResponse{data=model.LikeToggleResult}
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.LikeTargetVideo, "videoId")
}

// ToggleCommentLike godoc
// @Summary Лайк комментария
// @Tags Likes
// @Produce json
// @Param commentId path string true "UUID комментария"
// @Success 200 {object} requestresponse.APIResponse{data=model.LikeToggleResult}
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.LikeTargetComment, "commentId")
}

// ToggleTweetLike godoc
// @Summary Лайк твита
// @Tags Likes
// @Produce json
// @Param tweetId path string true "UUID твита"
// @Success 200 {object} requestresponse.APIResponse{data=model.LikeToggleResult}
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.LikeTargetTweet, "tweetId")
}

// LikedVideos godoc
// @Summary Понравившиеся видео
// @Tags Likes
// @Produce json
// @Success 200 {object} requestresponse.APIResponse{data=requestresponse.LikedVideosData}
// @Security ApiKeyAuth
// @Router /api/v1/likes/videos [get]
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	videos, err := h.LikeService.LikedVideos(r.Context(), user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.LikedVideosData{
		Videos: videos,
		Count:  len(videos),
	}, "Liked videos fetched successfully")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target model.LikeTarget, param string) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	targetUUID, ok := uuidParam(w, r, param)
	if !ok {
		return
	}

	result, err := h.LikeService.ToggleLike(r.Context(), user.UUID, target, targetUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	message := "Like removed"
	if result.Liked {
		message = "Like added"
	}
	writeJSON(w, http.StatusOK, result, message)
}
