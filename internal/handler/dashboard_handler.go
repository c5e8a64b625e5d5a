package handler

import (
	"net/http"

	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

type DashboardHandler struct {
	ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService}
}

// ChannelStats godoc
// @Summary Статистика канала
// @Description Видео, просмотры, подписчики и лайки текущего пользователя. Результат кэшируется в Redis.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} requestresponse.APIResponse{data=model.ChannelStats}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) ChannelStats(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.DashboardService.ChannelStats(r.Context(), user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

// ChannelVideos godoc
// @Summary Видео канала
// @Description Все видео текущего пользователя, включая неопубликованные, с числом лайков
// @Tags Dashboard
// @Produce json
// @Success 200 {object} requestresponse.APIResponse{data=[]model.VideoDetails}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/dashboard/videos [get]
func (h *DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	videos, err := h.DashboardService.ChannelVideos(r.Context(), user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videos, "Channel videos fetched successfully")
}
