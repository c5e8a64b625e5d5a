package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
	"videotube-server/internal/service"
)

type playlistMocks struct {
	playlists *MockPlaylistRepository
	videos    *MockVideoRepository
	users     *MockUserRepository
}

func newPlaylistService() (*service.PlaylistService, playlistMocks) {
	m := playlistMocks{
		playlists: new(MockPlaylistRepository),
		videos:    new(MockVideoRepository),
		users:     new(MockUserRepository),
	}
	return service.NewPlaylistService(m.playlists, m.videos, m.users), m
}

func (m playlistMocks) expectDetails(ctx context.Context, playlistUUID string) {
	m.playlists.On("GetSummary", ctx, playlistUUID).Return(&model.PlaylistSummary{
		Playlist:    model.Playlist{UUID: playlistUUID, OwnerUUID: "owner", Name: "mix"},
		TotalVideos: 1,
	}, nil)
	m.users.On("FindByUUID", ctx, "owner").Return(&model.User{UUID: "owner", Username: "alice", PasswordHash: "hash"}, nil)
	m.playlists.On("ListVideos", ctx, playlistUUID).Return([]model.Video{{UUID: "video-1"}}, nil)
}

func TestPlaylistService_AddVideo(t *testing.T) {
	ctx := context.Background()
	playlist := &model.Playlist{UUID: "pl-1", OwnerUUID: "owner"}

	t.Run("stranger forbidden", func(t *testing.T) {
		playlistService, m := newPlaylistService()
		m.playlists.On("FindByUUID", ctx, "pl-1").Return(playlist, nil)

		_, err := playlistService.AddVideo(ctx, "stranger", "video-1", "pl-1")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("missing video", func(t *testing.T) {
		playlistService, m := newPlaylistService()
		m.playlists.On("FindByUUID", ctx, "pl-1").Return(playlist, nil)
		m.videos.On("FindByUUID", ctx, "video-x").Return(nil, apperror.ErrNotFound)

		_, err := playlistService.AddVideo(ctx, "owner", "video-x", "pl-1")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("duplicate is a no-op", func(t *testing.T) {
		playlistService, m := newPlaylistService()
		m.playlists.On("FindByUUID", ctx, "pl-1").Return(playlist, nil)
		m.videos.On("FindByUUID", ctx, "video-1").Return(&model.Video{UUID: "video-1"}, nil)
		m.playlists.On("AddVideo", ctx, "pl-1", "video-1").Return(false, nil)
		m.expectDetails(ctx, "pl-1")

		details, err := playlistService.AddVideo(ctx, "owner", "video-1", "pl-1")

		require.NoError(t, err)
		assert.Equal(t, "alice", details.Owner.Username)
		assert.Len(t, details.Videos, 1)
		m.playlists.AssertExpectations(t)
	})
}

func TestPlaylistService_RemoveVideo(t *testing.T) {
	ctx := context.Background()
	playlist := &model.Playlist{UUID: "pl-1", OwnerUUID: "owner"}

	t.Run("video not in playlist", func(t *testing.T) {
		playlistService, m := newPlaylistService()
		m.playlists.On("FindByUUID", ctx, "pl-1").Return(playlist, nil)
		m.playlists.On("RemoveVideo", ctx, "pl-1", "video-9").Return(false, nil)

		_, err := playlistService.RemoveVideo(ctx, "owner", "video-9", "pl-1")
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	})

	t.Run("removed", func(t *testing.T) {
		playlistService, m := newPlaylistService()
		m.playlists.On("FindByUUID", ctx, "pl-1").Return(playlist, nil)
		m.playlists.On("RemoveVideo", ctx, "pl-1", "video-1").Return(true, nil)
		m.expectDetails(ctx, "pl-1")

		details, err := playlistService.RemoveVideo(ctx, "owner", "video-1", "pl-1")
		require.NoError(t, err)
		assert.Equal(t, "pl-1", details.UUID)
	})
}

func TestPlaylistService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("name required", func(t *testing.T) {
		playlistService, _ := newPlaylistService()
		_, err := playlistService.CreatePlaylist(ctx, "owner", " ", "desc")
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	})

	t.Run("update keeps missing fields", func(t *testing.T) {
		playlistService, m := newPlaylistService()
		m.playlists.On("FindByUUID", ctx, "pl-1").
			Return(&model.Playlist{UUID: "pl-1", OwnerUUID: "owner", Name: "old", Description: "keep"}, nil)
		m.playlists.On("UpdatePlaylist", ctx, mock.MatchedBy(func(p *model.Playlist) bool {
			return p.Name == "new" && p.Description == "keep"
		})).Return(&model.Playlist{UUID: "pl-1", Name: "new", Description: "keep"}, nil)

		updated, err := playlistService.UpdatePlaylist(ctx, "owner", "pl-1", "new", "")
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Name)
		m.playlists.AssertExpectations(t)
	})
}
