package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"videotube-server/internal/model"
	"videotube-server/internal/security"
)

// ===== MOCKS =====

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, uuid, fullName, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error {
	args := m.Called(ctx, uuid, newPasswordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, uuid, avatarURL string) (*model.User, error) {
	args := m.Called(ctx, uuid, avatarURL)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateCoverImage(ctx context.Context, uuid, coverImageURL string) (*model.User, error) {
	args := m.Called(ctx, uuid, coverImageURL)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, uuid, tokenHash string) error {
	args := m.Called(ctx, uuid, tokenHash)
	return args.Error(0)
}

func (m *MockUserRepository) SwapRefreshToken(ctx context.Context, uuid, expectedHash, nextHash string) (bool, error) {
	args := m.Called(ctx, uuid, expectedHash, nextHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *MockUserRepository) GetChannelProfile(ctx context.Context, username, viewerUUID string) (*model.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerUUID)
	if p, ok := args.Get(0).(*model.ChannelProfile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetWatchHistory(ctx context.Context, uuid string) ([]model.VideoDetails, error) {
	args := m.Called(ctx, uuid)
	if v, ok := args.Get(0).([]model.VideoDetails); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(user *model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) GenerateRefreshToken(userUUID string) (string, error) {
	args := m.Called(userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ParseAccessToken(tokenStr string) (*security.AccessClaims, error) {
	args := m.Called(tokenStr)
	if c, ok := args.Get(0).(*security.AccessClaims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenService) ParseRefreshToken(tokenStr string) (*security.RefreshClaims, error) {
	args := m.Called(tokenStr)
	if c, ok := args.Get(0).(*security.RefreshClaims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	args := m.Called(ctx, password, digest)
	return args.Bool(0), args.Error(1)
}

// MockMediaStorage
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) Upload(ctx context.Context, key string, upload *model.Upload) (string, error) {
	args := m.Called(ctx, key, upload)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStorage) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockMediaStorage) GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStorage) ObjectURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// MockVideoRepository
type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	args := m.Called(ctx, video)
	if v, ok := args.Get(0).(*model.Video); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) FindByUUID(ctx context.Context, uuid string) (*model.Video, error) {
	args := m.Called(ctx, uuid)
	if v, ok := args.Get(0).(*model.Video); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) GetDetails(ctx context.Context, uuid string) (*model.VideoDetails, error) {
	args := m.Called(ctx, uuid)
	if v, ok := args.Get(0).(*model.VideoDetails); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) ListPublished(ctx context.Context, query model.VideoListQuery) ([]model.VideoDetails, error) {
	args := m.Called(ctx, query)
	if v, ok := args.Get(0).([]model.VideoDetails); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.VideoDetails, error) {
	args := m.Called(ctx, ownerUUID)
	if v, ok := args.Get(0).([]model.VideoDetails); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) UpdateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	args := m.Called(ctx, video)
	if v, ok := args.Get(0).(*model.Video); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) TogglePublish(ctx context.Context, uuid string) (bool, error) {
	args := m.Called(ctx, uuid)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoRepository) SetPublished(ctx context.Context, uuid string, published bool) error {
	args := m.Called(ctx, uuid, published)
	return args.Error(0)
}

func (m *MockVideoRepository) DeleteVideo(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *MockVideoRepository) RecordView(ctx context.Context, videoUUID, viewerUUID string) error {
	args := m.Called(ctx, videoUUID, viewerUUID)
	return args.Error(0)
}

func (m *MockVideoRepository) ChannelStats(ctx context.Context, ownerUUID string) (*model.ChannelStats, error) {
	args := m.Called(ctx, ownerUUID)
	if s, ok := args.Get(0).(*model.ChannelStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetChannelStats(ctx context.Context, stats *model.ChannelStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockCacheRepository) GetChannelStats(ctx context.Context, channelUUID string) (*model.ChannelStats, error) {
	args := m.Called(ctx, channelUUID)
	if s, ok := args.Get(0).(*model.ChannelStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeleteChannelStats(ctx context.Context, channelUUID string) error {
	args := m.Called(ctx, channelUUID)
	return args.Error(0)
}

// MockTweetRepository
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) CreateTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	args := m.Called(ctx, tweet)
	if t, ok := args.Get(0).(*model.Tweet); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTweetRepository) FindByUUID(ctx context.Context, uuid string) (*model.Tweet, error) {
	args := m.Called(ctx, uuid)
	if t, ok := args.Get(0).(*model.Tweet); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTweetRepository) ListTweets(ctx context.Context) ([]model.TweetDetails, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]model.TweetDetails); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTweetRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.TweetDetails, error) {
	args := m.Called(ctx, ownerUUID)
	if t, ok := args.Get(0).([]model.TweetDetails); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTweetRepository) UpdateTweet(ctx context.Context, uuid, content string) (*model.Tweet, error) {
	args := m.Called(ctx, uuid, content)
	if t, ok := args.Get(0).(*model.Tweet); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTweetRepository) DeleteTweet(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

// MockPlaylistRepository
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error) {
	args := m.Called(ctx, playlist)
	if p, ok := args.Get(0).(*model.Playlist); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlaylistRepository) FindByUUID(ctx context.Context, uuid string) (*model.Playlist, error) {
	args := m.Called(ctx, uuid)
	if p, ok := args.Get(0).(*model.Playlist); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlaylistRepository) GetSummary(ctx context.Context, uuid string) (*model.PlaylistSummary, error) {
	args := m.Called(ctx, uuid)
	if p, ok := args.Get(0).(*model.PlaylistSummary); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.PlaylistSummary, error) {
	args := m.Called(ctx, ownerUUID)
	if p, ok := args.Get(0).([]model.PlaylistSummary); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlaylistRepository) ListVideos(ctx context.Context, playlistUUID string) ([]model.Video, error) {
	args := m.Called(ctx, playlistUUID)
	if v, ok := args.Get(0).([]model.Video); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlaylistRepository) UpdatePlaylist(ctx context.Context, playlist *model.Playlist) (*model.Playlist, error) {
	args := m.Called(ctx, playlist)
	if p, ok := args.Get(0).(*model.Playlist); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlaylistRepository) DeletePlaylist(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *MockPlaylistRepository) AddVideo(ctx context.Context, playlistUUID, videoUUID string) (bool, error) {
	args := m.Called(ctx, playlistUUID, videoUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, playlistUUID, videoUUID string) (bool, error) {
	args := m.Called(ctx, playlistUUID, videoUUID)
	return args.Bool(0), args.Error(1)
}

// MockSubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) ToggleSubscription(ctx context.Context, subscriberUUID, channelUUID string) (bool, error) {
	args := m.Called(ctx, subscriberUUID, channelUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscribers(ctx context.Context, channelUUID string) ([]model.UserSummary, error) {
	args := m.Called(ctx, channelUUID)
	if s, ok := args.Get(0).([]model.UserSummary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberUUID string) ([]model.UserSummary, error) {
	args := m.Called(ctx, subscriberUUID)
	if s, ok := args.Get(0).([]model.UserSummary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
