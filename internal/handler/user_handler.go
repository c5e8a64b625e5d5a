package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"videotube-server/internal/model"
	"videotube-server/internal/model/requestresponse"
	"videotube-server/internal/ports"
	"videotube-server/internal/util"
)

// multipartMemory : часть формы, которая держится в памяти, остальное уходит во временные файлы
const multipartMemory = 32 << 20

type UserHandler struct {
	ports.UserService
	maxUploadBytes int64
}

func NewUserHandler(userService ports.UserService, maxUploadBytes int64) *UserHandler {
	return &UserHandler{userService, maxUploadBytes}
}

// RegisterUser godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя. Аватар обязателен, обложка опциональна. Файлы сохраняются в S3.
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Имя пользователя"
// @Param email formData string true "Email"
// @Param full_name formData string true "Полное имя"
// @Param password formData string true "Пароль"
// @Param avatar formData file true "Аватар"
// @Param cover_image formData file false "Обложка канала"
// @Success 201 {object} requestresponse.APIResponse{data=model.User} "Пользователь создан"
// @Failure 400 {object} requestresponse.ErrorResponse "Невалидные поля или нет аватара"
// @Failure 409 {object} requestresponse.ErrorResponse "Username или email заняты"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/users/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}

	req := requestresponse.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("full_name"),
		Password: r.FormValue("password"),
	}
	if !validateRequest(w, &req) {
		return
	}

	avatar, avatarFile, err := formUpload(r, "avatar")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid avatar file")
		return
	}
	coverImage, coverFile, err := formUpload(r, "cover_image")
	if err != nil {
		closeQuietly(avatarFile)
		sendErrorResponse(w, http.StatusBadRequest, "invalid cover image file")
		return
	}
	defer closeQuietly(avatarFile, coverFile)

	user, err := h.UserService.Register(r.Context(), &model.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: coverImage,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user, "User registered successfully")
}

// UpdateAccount godoc
// @Summary Обновление профиля
// @Description Меняет полное имя и/или email текущего пользователя. Пароль этим запросом не меняется.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.UpdateAccountRequest true "Новые значения"
// @Success 200 {object} requestresponse.APIResponse{data=model.User}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Email занят"
// @Security ApiKeyAuth
// @Router /api/v1/users/update-account [patch]
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.UserService.UpdateAccount(r.Context(), user.UUID, req.FullName, req.Email)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated, "Account details updated successfully")
}

// UpdateAvatar godoc
// @Summary Замена аватара
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Новый аватар"
// @Success 200 {object} requestresponse.APIResponse{data=model.User}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/avatar [patch]
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceMedia(w, r, "avatar", h.UserService.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage godoc
// @Summary Замена обложки канала
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param cover_image formData file true "Новая обложка"
// @Success 200 {object} requestresponse.APIResponse{data=model.User}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.replaceMedia(w, r, "cover_image", h.UserService.UpdateCoverImage, "Cover image updated successfully")
}

// GetChannelProfile godoc
// @Summary Профиль канала
// @Description Количество подписчиков, подписок и подписан ли текущий пользователь
// @Tags Users
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} requestresponse.APIResponse{data=model.ChannelProfile}
// @Failure 404 {object} requestresponse.ErrorResponse "Канал не найден"
// @Security ApiKeyAuth
// @Router /api/v1/users/c/{username} [get]
func (h *UserHandler) GetChannelProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.UserService.GetChannelProfile(r.Context(), chi.URLParam(r, "username"), user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile, "User channel fetched successfully")
}

// GetWatchHistory godoc
// @Summary История просмотров
// @Tags Users
// @Produce json
// @Success 200 {object} requestresponse.APIResponse{data=[]model.VideoDetails}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/history [get]
func (h *UserHandler) GetWatchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	history, err := h.UserService.GetWatchHistory(r.Context(), user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, history, "Watch history fetched successfully")
}

func (h *UserHandler) replaceMedia(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, user *model.User, upload *model.Upload) (*model.User, error),
	message string,
) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if !h.parseMultipart(w, r) {
		return
	}

	upload, file, err := formUpload(r, field)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid "+field+" file")
		return
	}
	defer closeQuietly(file)

	updated, err := update(r.Context(), user, upload)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated, message)
}

func (h *UserHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	return parseMultipartForm(w, r, h.maxUploadBytes)
}
