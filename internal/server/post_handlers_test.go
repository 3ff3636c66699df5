package server

import (
	"net/http"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostValidation(t *testing.T) {
	_, app, _ := setupTestServer(t)
	token, _ := registerUser(t, app, "alice")

	t.Run("content only", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
			"content": "hello world",
		})
		assert.Equal(t, http.StatusCreated, status)
		post := body["post"].(map[string]any)
		assert.Equal(t, "hello world", post["content"])
		assert.Equal(t, true, post["comments_enabled"])
	})

	t.Run("media only", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
			"media_url": "https://cdn.example.com/cat.png",
		})
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("neither content nor media", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("comments disabled at creation", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/posts/", token, map[string]any{
			"content":          "no comments please",
			"comments_enabled": false,
		})
		assert.Equal(t, http.StatusCreated, status)
		post := body["post"].(map[string]any)
		assert.Equal(t, false, post["comments_enabled"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/posts/", "", map[string]any{
			"content": "anonymous",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestPostOwnershipGuards(t *testing.T) {
	_, app, _ := setupTestServer(t)
	aliceToken, _ := registerUser(t, app, "alice")
	bobToken, _ := registerUser(t, app, "bob")

	postID := createPost(t, app, aliceToken, map[string]any{"content": "alice's post"})
	path := "/api/posts/" + itoa(postID)

	t.Run("owner can update", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, path, aliceToken, map[string]any{
			"content": "edited",
		})
		assert.Equal(t, http.StatusOK, status)
		post := body["post"].(map[string]any)
		assert.Equal(t, "edited", post["content"])
	})

	t.Run("non-owner update reports not found", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPut, path, bobToken, map[string]any{
			"content": "hijacked",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("non-owner delete reports not found", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, path, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("owner can toggle comments only", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, path, aliceToken, map[string]any{
			"comments_enabled": false,
		})
		assert.Equal(t, http.StatusOK, status)
		post := body["post"].(map[string]any)
		assert.Equal(t, false, post["comments_enabled"])
		assert.Equal(t, "edited", post["content"])
	})
}

func TestPostSoftDelete(t *testing.T) {
	s, app, db := setupTestServer(t)
	token, userID := registerUser(t, app, "alice")

	postID := createPost(t, app, token, map[string]any{"content": "short lived"})
	path := "/api/posts/" + itoa(postID)

	status, _ := doJSON(t, app, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, status)

	t.Run("row survives with deleted_at set", func(t *testing.T) {
		var post models.Post
		require.NoError(t, db.Unscoped().First(&post, postID).Error)
		assert.True(t, post.DeletedAt.Valid)
		assert.Equal(t, userID, post.UserID)
	})

	t.Run("fetch reports not found", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("update after delete reports not found", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPut, path, token, map[string]any{
			"content": "resurrected",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("excluded from author listing", func(t *testing.T) {
		posts, err := s.postRepo.GetByUserID(t.Context(), userID, 20, 0)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestGetPostLikedFlag(t *testing.T) {
	_, app, _ := setupTestServer(t)
	aliceToken, _ := registerUser(t, app, "alice")
	bobToken, _ := registerUser(t, app, "bob")

	postID := createPost(t, app, aliceToken, map[string]any{"content": "like me"})
	path := "/api/posts/" + itoa(postID)

	status, _ := doJSON(t, app, http.MethodPost, "/api/likes/", bobToken, map[string]any{
		"post_id": postID,
	})
	require.Equal(t, http.StatusCreated, status)

	t.Run("anonymous view has no liked flag", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.NotContains(t, body, "liked")
	})

	t.Run("liker sees liked true", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, path, bobToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["liked"])
	})

	t.Run("author sees liked false", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, path, aliceToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["liked"])
	})
}

func TestFeedComposition(t *testing.T) {
	_, app, _ := setupTestServer(t)
	aliceToken, aliceID := registerUser(t, app, "alice")
	bobToken, _ := registerUser(t, app, "bob")
	carolToken, _ := registerUser(t, app, "carol")

	alicePost := createPost(t, app, aliceToken, map[string]any{"content": "from alice"})
	bobPost := createPost(t, app, bobToken, map[string]any{"content": "from bob"})
	createPost(t, app, carolToken, map[string]any{"content": "from carol"})

	status, _ := doJSON(t, app, http.MethodPost, "/api/users/follow", bobToken, map[string]any{
		"followeeId": aliceID,
	})
	require.Equal(t, http.StatusOK, status)

	t.Run("own and followed posts, newest first", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/posts/feed", bobToken, nil)
		require.Equal(t, http.StatusOK, status)

		posts := body["posts"].([]any)
		require.Len(t, posts, 2)
		ids := []uint{postIDOf(t, posts[0]), postIDOf(t, posts[1])}
		assert.Equal(t, []uint{bobPost, alicePost}, ids)

		pagination := body["pagination"].(map[string]any)
		assert.Equal(t, float64(1), pagination["page"])
		assert.Equal(t, float64(20), pagination["limit"])
		assert.Equal(t, false, pagination["hasMore"])
	})

	t.Run("deleted post drops out of feed", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, "/api/posts/"+itoa(alicePost), aliceToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, body := doJSON(t, app, http.MethodGet, "/api/posts/feed", bobToken, nil)
		require.Equal(t, http.StatusOK, status)
		posts := body["posts"].([]any)
		require.Len(t, posts, 1)
		assert.Equal(t, bobPost, postIDOf(t, posts[0]))
	})

	t.Run("pagination windows", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/posts/feed?limit=1", bobToken, nil)
		require.Equal(t, http.StatusOK, status)
		pagination := body["pagination"].(map[string]any)
		assert.Equal(t, true, pagination["hasMore"])

		status, body = doJSON(t, app, http.MethodGet, "/api/posts/feed?page=99", bobToken, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, body["posts"])
	})
}

func TestListPosts(t *testing.T) {
	_, app, _ := setupTestServer(t)
	aliceToken, _ := registerUser(t, app, "alice")
	bobToken, _ := registerUser(t, app, "bob")

	first := createPost(t, app, aliceToken, map[string]any{"content": "first"})
	second := createPost(t, app, bobToken, map[string]any{"content": "second"})
	hidden := createPost(t, app, bobToken, map[string]any{"content": "hidden"})

	status, _ := doJSON(t, app, http.MethodDelete, "/api/posts/"+itoa(hidden), bobToken, nil)
	require.Equal(t, http.StatusOK, status)

	t.Run("public browse, newest first, deleted excluded", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/posts/", "", nil)
		require.Equal(t, http.StatusOK, status)

		posts := body["posts"].([]any)
		require.Len(t, posts, 2)
		assert.Equal(t, second, postIDOf(t, posts[0]))
		assert.Equal(t, first, postIDOf(t, posts[1]))
	})

	t.Run("pagination", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/posts/?limit=1", "", nil)
		require.Equal(t, http.StatusOK, status)

		posts := body["posts"].([]any)
		require.Len(t, posts, 1)
		pagination := body["pagination"].(map[string]any)
		assert.Equal(t, true, pagination["hasMore"])
	})
}

func TestSearchPosts(t *testing.T) {
	_, app, _ := setupTestServer(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/posts/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func postIDOf(t *testing.T, entry any) uint {
	t.Helper()
	post, ok := entry.(map[string]any)
	require.True(t, ok)
	id, ok := post["id"].(float64)
	require.True(t, ok)
	return uint(id)
}
