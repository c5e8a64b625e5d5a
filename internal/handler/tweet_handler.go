package handler

import (
	"net/http"

	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

type TweetHandler struct {
	ports.TweetService
}

func NewTweetHandler(tweetService ports.TweetService) *TweetHandler {
	return &TweetHandler{tweetService}
}

// CreateTweet godoc
// @Summary Новый твит
// @Tags Tweets
// @Accept json
// @Produce json
// @Param body body requestresponse.ContentRequest true "Текст твита"
// @Success 201 {object} requestresponse.APIResponse{data=model.Tweet}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tweets [post]
func (h *TweetHandler) CreateTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tweet, err := h.TweetService.CreateTweet(r.Context(), user.UUID, req.Content)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListTweets godoc
// @Summary Все твиты
// @Tags Tweets
// @Produce json
// @Success 200 {object} requestresponse.APIResponse{data=[]model.TweetDetails}
// @Security ApiKeyAuth
// @Router /api/v1/tweets [get]
func (h *TweetHandler) ListTweets(w http.ResponseWriter, r *http.Request) {
	tweets, err := h.TweetService.ListTweets(r.Context())
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tweets, "Tweets fetched successfully")
}

// ListUserTweets godoc
// @Summary Твиты пользователя
// @Tags Tweets
// @Produce json
// @Param userId path string true "UUID пользователя"
// @Success 200 {object} requestresponse.APIResponse{data=[]model.TweetDetails}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tweets/user/{userId} [get]
func (h *TweetHandler) ListUserTweets(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	tweets, err := h.TweetService.ListUserTweets(r.Context(), userUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tweets, "User tweets fetched successfully")
}

// UpdateTweet godoc
// @Summary Редактирование твита
// @Tags Tweets
// @Accept json
// @Produce json
// @Param tweetId path string true "UUID твита"
// @Param body body requestresponse.ContentRequest true "Новый текст"
// @Success 200 {object} requestresponse.APIResponse{data=model.Tweet}
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tweets/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	tweetUUID, ok := uuidParam(w, r, "tweetId")
	if !ok {
		return
	}

	var req requestresponse.ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tweet, err := h.TweetService.UpdateTweet(r.Context(), user.UUID, tweetUUID, req.Content)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet godoc
// @Summary Удаление твита
// @Tags Tweets
// @Produce json
// @Param tweetId path string true "UUID твита"
// @Success 200 {object} requestresponse.APIResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/tweets/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	tweetUUID, ok := uuidParam(w, r, "tweetId")
	if !ok {
		return
	}

	if err := h.TweetService.DeleteTweet(r.Context(), user.UUID, tweetUUID); err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Tweet deleted successfully")
}
