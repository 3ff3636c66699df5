package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	t.Run("First like inserts", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(uint(1), uint(7)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := repo.Like(ctx, 1, 7)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Repeat like reports already liked", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(uint(1), uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.Like(ctx, 1, 7)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLikeRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	t.Run("Existing like removed", func(t *testing.T) {
		// Hard delete, not a soft-delete update
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(uint(1), uint(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 7)
		assert.NoError(t, err)
		assert.True(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent like reports not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
			WithArgs(uint(1), uint(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		removed, err := repo.Unlike(ctx, 1, 9)
		assert.NoError(t, err)
		assert.False(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLikeRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(uint(1), uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Likers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT users\.id, users\.username, users\.full_name FROM "users" JOIN likes ON likes\.user_id = users\.id WHERE likes\.post_id = \$1 ORDER BY likes\.created_at DESC, likes\.id DESC LIMIT \$2`).
		WithArgs(uint(7), 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name"}).
			AddRow(1, "alice", "Alice A").
			AddRow(2, "bob", "Bob B"))

	likers, err := repo.Likers(ctx, 7, 20, 0)
	require.NoError(t, err)
	require.Len(t, likers, 2)
	assert.Equal(t, "alice", likers[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
