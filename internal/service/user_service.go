package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
	"videotube-server/internal/security"
)

type UserService struct {
	userRepository ports.UserRepository
	passwordHasher ports.PasswordHasher
	storage        ports.MediaStorage
}

func NewUserService(
	userRepository ports.UserRepository,
	passwordHasher ports.PasswordHasher,
	storage ports.MediaStorage,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		storage:        storage,
	}
}

// Register : создает пользователя с аватаром (обязателен) и обложкой (опционально)
func (s *UserService) Register(ctx context.Context, input *model.RegisterInput) (*model.User, error) {
	username := normalizeIdentifier(input.Username)
	email := normalizeIdentifier(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperror.BadRequest("all fields are required")
	}
	if len(input.Password) > security.MaxPasswordBytes {
		return nil, apperror.BadRequest(security.ErrPasswordTooLong.Error())
	}
	if input.Avatar == nil {
		return nil, apperror.BadRequest("avatar file is required")
	}

	exists, err := s.userRepository.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperror.Internal("failed to check user", err)
	}
	if exists {
		return nil, apperror.Conflict("user with email or username already exists")
	}

	user := &model.User{
		UUID:     uuid.New().String(),
		Username: username,
		Email:    email,
		FullName: fullName,
	}

	user.Avatar, err = s.storage.Upload(ctx, mediaKey(user.UUID, "avatar", input.Avatar.Filename), input.Avatar)
	if err != nil {
		return nil, apperror.Internal("failed to upload avatar", err)
	}

	if input.CoverImage != nil {
		user.CoverImage, err = s.storage.Upload(ctx, mediaKey(user.UUID, "cover", input.CoverImage.Filename), input.CoverImage)
		if err != nil {
			deleteMediaQuietly(ctx, s.storage, user.Avatar)
			return nil, apperror.Internal("failed to upload cover image", err)
		}
	}

	user.PasswordHash, err = s.passwordHasher.Hash(ctx, input.Password)
	if err != nil {
		s.cleanupMedia(ctx, user)
		return nil, apperror.Internal("failed to hash password", err)
	}

	createdUser, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		s.cleanupMedia(ctx, user)
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("user with email or username already exists")
		}
		return nil, apperror.Internal("something went wrong while registering the user", err)
	}

	zap.L().Info("[UserService] зарегистрирован пользователь", zap.String("user_uuid", createdUser.UUID))
	return createdUser.Sanitized(), nil
}

func (s *UserService) UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeIdentifier(email)
	if fullName == "" && email == "" {
		return nil, apperror.BadRequest("all fields are required")
	}

	user, err := s.userRepository.UpdateAccount(ctx, uuid, fullName, email)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrConflict):
			return nil, apperror.Conflict("email is already taken")
		case errors.Is(err, apperror.ErrNotFound):
			return nil, apperror.NotFound("user does not exist")
		default:
			return nil, apperror.Internal("failed to update account", err)
		}
	}
	return user.Sanitized(), nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, user *model.User, upload *model.Upload) (*model.User, error) {
	if upload == nil {
		return nil, apperror.BadRequest("avatar file is missing")
	}
	return s.replaceMedia(ctx, user, "avatar", user.Avatar, upload, s.userRepository.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, user *model.User, upload *model.Upload) (*model.User, error) {
	if upload == nil {
		return nil, apperror.BadRequest("cover image file is missing")
	}
	return s.replaceMedia(ctx, user, "cover", user.CoverImage, upload, s.userRepository.UpdateCoverImage)
}

// replaceMedia : загружает новый файл, сохраняет ссылку и удаляет старый файл
func (s *UserService) replaceMedia(
	ctx context.Context,
	user *model.User,
	kind string,
	oldRef string,
	upload *model.Upload,
	save func(ctx context.Context, uuid, url string) (*model.User, error),
) (*model.User, error) {
	mediaURL, err := s.storage.Upload(ctx, mediaKey(user.UUID, kind, upload.Filename), upload)
	if err != nil {
		return nil, apperror.Internal("failed to upload "+kind, err)
	}

	updated, err := save(ctx, user.UUID, mediaURL)
	if err != nil {
		deleteMediaQuietly(ctx, s.storage, mediaURL)
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("user does not exist")
		}
		return nil, apperror.Internal("failed to update "+kind, err)
	}

	deleteMediaQuietly(ctx, s.storage, oldRef)
	return updated.Sanitized(), nil
}

func (s *UserService) GetChannelProfile(ctx context.Context, username, viewerUUID string) (*model.ChannelProfile, error) {
	username = normalizeIdentifier(username)
	if username == "" {
		return nil, apperror.BadRequest("username is missing")
	}

	profile, err := s.userRepository.GetChannelProfile(ctx, username, viewerUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("channel does not exist")
		}
		return nil, apperror.Internal("failed to load channel", err)
	}
	return profile, nil
}

func (s *UserService) GetWatchHistory(ctx context.Context, uuid string) ([]model.VideoDetails, error) {
	history, err := s.userRepository.GetWatchHistory(ctx, uuid)
	if err != nil {
		return nil, apperror.Internal("failed to load watch history", err)
	}
	return history, nil
}

func (s *UserService) cleanupMedia(ctx context.Context, user *model.User) {
	deleteMediaQuietly(ctx, s.storage, user.Avatar)
	deleteMediaQuietly(ctx, s.storage, user.CoverImage)
}
