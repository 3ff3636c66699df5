package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{UserID: 1, Content: "hello world"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Found including soft-deleted", func(t *testing.T) {
		deletedAt := time.Now()
		// Unscoped lookup: no deleted_at filter in the WHERE clause
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "deleted_at"}).
				AddRow(1, 10, "gone but queryable", deletedAt))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "user10"))

		post, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "gone but queryable", post.Content)
		assert.True(t, post.DeletedAt.Valid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		post, err := repo.GetByID(ctx, 99)
		assert.Error(t, err)
		assert.Nil(t, post)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Feed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// Own posts plus followed authors, newest first, soft-deleted excluded.
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE \(posts\.user_id = \$1 OR posts\.user_id IN \(SELECT "followee_id" FROM "follows" WHERE follower_id = \$2\)\) AND "posts"\."deleted_at" IS NULL ORDER BY created_at DESC, id DESC LIMIT \$3`).
		WithArgs(1, 1, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).
			AddRow(3, 2, "from a followee").
			AddRow(2, 1, "my own post"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(1, "me").
			AddRow(2, "them"))

	posts, err := repo.Feed(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(3), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Owner updates", func(t *testing.T) {
		content := "edited"

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(ctx, 1, 10, models.PostUpdate{Content: &content})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non-owner gets not found", func(t *testing.T) {
		content := "edited"

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Update(ctx, 1, 99, models.PostUpdate{Content: &content})
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty update is a no-op", func(t *testing.T) {
		err := repo.Update(ctx, 1, 10, models.PostUpdate{})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Owner soft-deletes", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 1, 10)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent or foreign post", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 1, 99)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE content ILIKE $1 AND "posts"."deleted_at" IS NULL ORDER BY created_at DESC, id DESC LIMIT $2`)).
		WithArgs("%coffee%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).
			AddRow(7, 3, "coffee time"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(3, "barista"))

	posts, err := repo.Search(ctx, "coffee", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "coffee time", posts[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_LikedBy(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	likedAt := time.Now()
	mock.ExpectQuery(`SELECT posts\.\*, likes\.created_at AS liked_at FROM "posts" JOIN likes ON likes\.post_id = posts\.id WHERE likes\.user_id = \$1 AND "posts"\."deleted_at" IS NULL ORDER BY likes\.created_at DESC, likes\.id DESC LIMIT \$2`).
		WithArgs(1, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "liked_at"}).
			AddRow(5, 2, "liked post", likedAt))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "author"))

	posts, err := repo.LikedBy(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].LikedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
