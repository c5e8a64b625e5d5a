package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/apperror"
	"videotube-server/internal/model"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cats", "cats"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`C:\dir`, `C:\\dir`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeLike(tt.input), tt.input)
	}
}

func TestVideoRepository_ListPublished_EscapesSearch(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := NewVideoRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta(`v.title ILIKE $1 ESCAPE '\' OR v.description ILIKE $1 ESCAPE '\'`)).
		WithArgs(`%100\%\_off%`, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

	videos, err := repo.ListPublished(context.Background(), model.VideoListQuery{
		Page:  2,
		Limit: 10,
		Query: "100%_off",
	})

	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_SetPublished(t *testing.T) {
	t.Run("publishes", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewVideoRepository(database)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE videos SET is_published = $2")).
			WithArgs(testVideoUUID, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetPublished(context.Background(), testVideoUUID, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing video", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := NewVideoRepository(database)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE videos SET is_published = $2")).
			WithArgs(testVideoUUID, true).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetPublished(context.Background(), testVideoUUID, true)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}
