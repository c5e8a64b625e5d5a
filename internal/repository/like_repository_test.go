package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/model"
)

const testVideoUUID = "0b5c3f4e-2a7d-4c55-9a8e-6a1b2c3d4e5f"

func TestLikeRepository_ToggleLike(t *testing.T) {
	t.Run("like", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewLikeRepository(database)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE liked_by = $1 AND video_uuid = $2")).
			WithArgs(testUserUUID, testVideoUUID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes (liked_by, video_uuid)")).
			WithArgs(testUserUUID, testVideoUUID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := repo.ToggleLike(context.Background(), model.LikeTargetVideo, testVideoUUID, testUserUUID)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unlike", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewLikeRepository(database)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE liked_by = $1 AND tweet_uuid = $2")).
			WithArgs(testUserUUID, testVideoUUID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := repo.ToggleLike(context.Background(), model.LikeTargetTweet, testVideoUUID, testUserUUID)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewLikeRepository(database)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes")).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := repo.ToggleLike(context.Background(), model.LikeTargetComment, testVideoUUID, testUserUUID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown target", func(t *testing.T) {
		database, _ := newMockDatabase(t)
		_, err := NewLikeRepository(database).ToggleLike(context.Background(), model.LikeTarget("playlist"), testVideoUUID, testUserUUID)
		assert.Error(t, err)
	})
}

func TestVideoRepository_RecordView(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewVideoRepository(database)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE videos SET views = views + 1 WHERE uuid = $1")).
		WithArgs(testVideoUUID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO watch_history")).
		WithArgs(testUserUUID, testVideoUUID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RecordView(context.Background(), testVideoUUID, testUserUUID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_TogglePublish(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewVideoRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE videos SET is_published = NOT is_published")).
		WithArgs(testVideoUUID).
		WillReturnRows(sqlmock.NewRows([]string{"is_published"}).AddRow(false))

	published, err := repo.TogglePublish(context.Background(), testVideoUUID)
	require.NoError(t, err)
	assert.False(t, published)
}

func TestPlaylistRepository_AddVideo_Duplicate(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewPlaylistRepository(database)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO playlist_videos")).
		WithArgs("playlist", testVideoUUID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.AddVideo(context.Background(), "playlist", testVideoUUID)
	require.NoError(t, err)
	assert.False(t, added)
}
