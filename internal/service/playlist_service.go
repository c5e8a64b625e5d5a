package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/ports"
)

type PlaylistService struct {
	playlistRepository ports.PlaylistRepository
	videoRepository    ports.VideoRepository
	userRepository     ports.UserRepository
}

func NewPlaylistService(
	playlistRepository ports.PlaylistRepository,
	videoRepository ports.VideoRepository,
	userRepository ports.UserRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepository: playlistRepository,
		videoRepository:    videoRepository,
		userRepository:     userRepository,
	}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerUUID, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.BadRequest("playlist name is required")
	}

	playlist, err := s.playlistRepository.CreatePlaylist(ctx, &model.Playlist{
		UUID:        uuid.New().String(),
		OwnerUUID:   ownerUUID,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, apperror.Internal("failed to create playlist", err)
	}
	return playlist, nil
}

func (s *PlaylistService) UserPlaylists(ctx context.Context, userUUID string) ([]model.PlaylistSummary, error) {
	playlists, err := s.playlistRepository.ListByOwner(ctx, userUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch playlists", err)
	}
	return playlists, nil
}

// GetPlaylist : плейлист с владельцем и опубликованными видео
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistUUID string) (*model.PlaylistDetails, error) {
	summary, err := s.playlistRepository.GetSummary(ctx, playlistUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("playlist does not exist")
		}
		return nil, apperror.Internal("failed to fetch playlist", err)
	}

	owner, err := s.userRepository.FindByUUID(ctx, summary.OwnerUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch playlist owner", err)
	}

	videos, err := s.playlistRepository.ListVideos(ctx, playlistUUID)
	if err != nil {
		return nil, apperror.Internal("failed to fetch playlist videos", err)
	}

	return &model.PlaylistDetails{
		PlaylistSummary: *summary,
		Owner:           owner.Summary(),
		Videos:          videos,
	}, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, ownerUUID, playlistUUID, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, apperror.BadRequest("name or description is required")
	}

	playlist, err := s.ownedPlaylist(ctx, ownerUUID, playlistUUID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}

	updated, err := s.playlistRepository.UpdatePlaylist(ctx, playlist)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("playlist does not exist")
		}
		return nil, apperror.Internal("failed to update playlist", err)
	}
	return updated, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, ownerUUID, playlistUUID string) error {
	if _, err := s.ownedPlaylist(ctx, ownerUUID, playlistUUID); err != nil {
		return err
	}

	if err := s.playlistRepository.DeletePlaylist(ctx, playlistUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("playlist does not exist")
		}
		return apperror.Internal("failed to delete playlist", err)
	}
	return nil
}

// AddVideo : повторное добавление того же видео ничего не меняет
func (s *PlaylistService) AddVideo(ctx context.Context, ownerUUID, videoUUID, playlistUUID string) (*model.PlaylistDetails, error) {
	if _, err := s.ownedPlaylist(ctx, ownerUUID, playlistUUID); err != nil {
		return nil, err
	}
	if _, err := s.videoRepository.FindByUUID(ctx, videoUUID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("video does not exist")
		}
		return nil, apperror.Internal("failed to fetch video", err)
	}

	if _, err := s.playlistRepository.AddVideo(ctx, playlistUUID, videoUUID); err != nil {
		return nil, apperror.Internal("failed to add video to playlist", err)
	}
	return s.GetPlaylist(ctx, playlistUUID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, ownerUUID, videoUUID, playlistUUID string) (*model.PlaylistDetails, error) {
	if _, err := s.ownedPlaylist(ctx, ownerUUID, playlistUUID); err != nil {
		return nil, err
	}

	removed, err := s.playlistRepository.RemoveVideo(ctx, playlistUUID, videoUUID)
	if err != nil {
		return nil, apperror.Internal("failed to remove video from playlist", err)
	}
	if !removed {
		return nil, apperror.BadRequest("video is not in the playlist")
	}
	return s.GetPlaylist(ctx, playlistUUID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, ownerUUID, playlistUUID string) (*model.Playlist, error) {
	playlist, err := s.playlistRepository.FindByUUID(ctx, playlistUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("playlist does not exist")
		}
		return nil, apperror.Internal("failed to fetch playlist", err)
	}
	if playlist.OwnerUUID != ownerUUID {
		return nil, apperror.Forbidden("you are not the owner of this playlist")
	}
	return playlist, nil
}
