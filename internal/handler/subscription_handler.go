package handler

import (
	"net/http"

	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

type SubscriptionHandler struct {
	ports.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService}
}

// ToggleSubscription godoc
// @Summary Подписка на канал
// @Description Повторный вызов отменяет подписку. Подписаться на себя нельзя.
// @Tags Subscriptions
// @Produce json
// @Param channelId path string true "UUID канала"
// @Success 200 {object} requestresponse.APIResponse{data=model.SubscriptionToggleResult}
// @Failure 400 {object} requestresponse.ErrorResponse "Подписка на свой канал"
// @Failure 404 {object} requestresponse.ErrorResponse "Канал не найден"
// @Security ApiKeyAuth
// @Router /api/v1/subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	channelUUID, ok := uuidParam(w, r, "channelId")
	if !ok {
		return
	}

	result, err := h.SubscriptionService.ToggleSubscription(r.Context(), user.UUID, channelUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	message := "Unsubscribed successfully"
	if result.Subscribed {
		message = "Subscribed successfully"
	}
	writeJSON(w, http.StatusOK, result, message)
}

// ChannelSubscribers godoc
// @Summary Подписчики канала
// @Tags Subscriptions
// @Produce json
// @Param channelId path string true "UUID канала"
// @Success 200 {object} requestresponse.APIResponse{data=[]model.UserSummary}
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) ChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelUUID, ok := uuidParam(w, r, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.SubscriptionService.ChannelSubscribers(r.Context(), channelUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// SubscribedChannels godoc
// @Summary Каналы, на которые подписан пользователь
// @Tags Subscriptions
// @Produce json
// @Param subscriberId path string true "UUID пользователя"
// @Success 200 {object} requestresponse.APIResponse{data=[]model.UserSummary}
// @Security ApiKeyAuth
// @Router /api/v1/subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberUUID, ok := uuidParam(w, r, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.SubscriptionService.SubscribedChannels(r.Context(), subscriberUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
