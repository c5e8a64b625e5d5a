package ports

import (
	"context"

	"videotube-server/internal/model"
)

type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error)
	FindByUUID(ctx context.Context, uuid string) (*model.Playlist, error)
	GetSummary(ctx context.Context, uuid string) (*model.PlaylistSummary, error)
	ListByOwner(ctx context.Context, ownerUUID string) ([]model.PlaylistSummary, error)
	ListVideos(ctx context.Context, playlistUUID string) ([]model.Video, error)
	UpdatePlaylist(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, uuid string) error
	AddVideo(ctx context.Context, playlistUUID, videoUUID string) (bool, error)
	RemoveVideo(ctx context.Context, playlistUUID, videoUUID string) (bool, error)
}

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, ownerUUID, name, description string) (*model.Playlist, error)
	UserPlaylists(ctx context.Context, userUUID string) ([]model.PlaylistSummary, error)
	GetPlaylist(ctx context.Context, playlistUUID string) (*model.PlaylistDetails, error)
	UpdatePlaylist(ctx context.Context, ownerUUID, playlistUUID, name, description string) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, ownerUUID, playlistUUID string) error
	AddVideo(ctx context.Context, ownerUUID, videoUUID, playlistUUID string) (*model.PlaylistDetails, error)
	RemoveVideo(ctx context.Context, ownerUUID, videoUUID, playlistUUID string) (*model.PlaylistDetails, error)
}
