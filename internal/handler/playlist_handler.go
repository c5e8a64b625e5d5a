package handler

import (
	"net/http"

	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

type PlaylistHandler struct {
	ports.PlaylistService
}

func NewPlaylistHandler(playlistService ports.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService}
}

// CreatePlaylist godoc
// @Summary Новый плейлист
// @Tags Playlists
// @Accept json
// @Produce json
// @Param body body requestresponse.PlaylistRequest true "Название и описание"
// @Success 201 {object} requestresponse.APIResponse{data=model.Playlist}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/playlist [post]
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.PlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.PlaylistService.CreatePlaylist(r.Context(), user.UUID, req.Name, req.Description)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, playlist, "Playlist created successfully")
}

// UserPlaylists godoc
// @Summary Плейлисты пользователя
// @Description С количеством видео и суммой просмотров
// @Tags Playlists
// @Produce json
// @Param userId path string true "UUID пользователя"
// @Success 200 {object} requestresponse.APIResponse{data=[]model.PlaylistSummary}
// @Security ApiKeyAuth
// @Router /api/v1/playlist/user/{userId} [get]
func (h *PlaylistHandler) UserPlaylists(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := uuidParam(w, r, "userId")
	if !ok {
		return
	}

	playlists, err := h.PlaylistService.UserPlaylists(r.Context(), userUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlists, "User playlists fetched successfully")
}

// GetPlaylist godoc
// @Summary Плейлист с видео и владельцем
// @Tags Playlists
// @Produce json
// @Param playlistId path string true "UUID плейлиста"
// @Success 200 {object} requestresponse.APIResponse{data=model.PlaylistDetails}
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/playlist/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistUUID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.GetPlaylist(r.Context(), playlistUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Playlist fetched successfully")
}

// UpdatePlaylist godoc
// @Summary Редактирование плейлиста
// @Tags Playlists
// @Accept json
// @Produce json
// @Param playlistId path string true "UUID плейлиста"
// @Param body body requestresponse.UpdatePlaylistRequest true "Новые значения"
// @Success 200 {object} requestresponse.APIResponse{data=model.Playlist}
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Security ApiKeyAuth
// @Router /api/v1/playlist/{playlistId} [patch]
func (h *PlaylistHandler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	playlistUUID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	var req requestresponse.UpdatePlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.PlaylistService.UpdatePlaylist(r.Context(), user.UUID, playlistUUID, req.Name, req.Description)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist godoc
// @Summary Удаление плейлиста
// @Tags Playlists
// @Produce json
// @Param playlistId path string true "UUID плейлиста"
// @Success 200 {object} requestresponse.APIResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Security ApiKeyAuth
// @Router /api/v1/playlist/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	playlistUUID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return
	}

	if err := h.PlaylistService.DeletePlaylist(r.Context(), user.UUID, playlistUUID); err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Playlist deleted successfully")
}

// AddVideo godoc
// @Summary Добавить видео в плейлист
// @Description Повторное добавление ничего не меняет
// @Tags Playlists
// @Produce json
// @Param videoId path string true "UUID видео"
// @Param playlistId path string true "UUID плейлиста"
// @Success 200 {object} requestresponse.APIResponse{data=model.PlaylistDetails}
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/playlist/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	user, videoUUID, playlistUUID, ok := playlistVideoParams(w, r)
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.AddVideo(r.Context(), user, videoUUID, playlistUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Video added to playlist")
}

// RemoveVideo godoc
// @Summary Убрать видео из плейлиста
// @Tags Playlists
// @Produce json
// @Param videoId path string true "UUID видео"
// @Param playlistId path string true "UUID плейлиста"
// @Success 200 {object} requestresponse.APIResponse{data=model.PlaylistDetails}
// @Failure 400 {object} requestresponse.ErrorResponse "Видео нет в плейлисте"
// @Failure 403 {object} requestresponse.ErrorResponse "Не владелец"
// @Security ApiKeyAuth
// @Router /api/v1/playlist/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	user, videoUUID, playlistUUID, ok := playlistVideoParams(w, r)
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.RemoveVideo(r.Context(), user, videoUUID, playlistUUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Video removed from playlist")
}

func playlistVideoParams(w http.ResponseWriter, r *http.Request) (string, string, string, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return "", "", "", false
	}
	videoUUID, ok := uuidParam(w, r, "videoId")
	if !ok {
		return "", "", "", false
	}
	playlistUUID, ok := uuidParam(w, r, "playlistId")
	if !ok {
		return "", "", "", false
	}
	return user.UUID, videoUUID, playlistUUID, true
}
