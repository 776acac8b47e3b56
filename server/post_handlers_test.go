package server

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postID(t *testing.T, post map[string]any) int {
	t.Helper()
	id, ok := post["id"].(float64)
	require.True(t, ok)
	return int(id)
}

func TestCreatePost(t *testing.T) {
	_, app := setupTestApp(t)
	token := registerUser(t, app, "Poster", "poster@example.com", "secret123")

	t.Run("text is required", func(t *testing.T) {
		resp, raw := doJSON(t, app, "POST", "/api/posts", token, map[string]string{})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "Text is required")
	})

	t.Run("author name and avatar are denormalized", func(t *testing.T) {
		post := createPost(t, app, token, "hello world")
		assert.Equal(t, "Poster", post["name"])
		assert.Contains(t, post["avatar"], "gravatar.com")
		assert.Equal(t, []any{}, post["likes"])
		assert.Equal(t, []any{}, post["comments"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/posts", "", map[string]string{"text": "nope"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListPosts(t *testing.T) {
	_, app := setupTestApp(t)
	token := registerUser(t, app, "Lister", "lister@example.com", "secret123")

	createPost(t, app, token, "oldest")
	createPost(t, app, token, "middle")
	createPost(t, app, token, "newest")

	resp, raw := doJSON(t, app, "GET", "/api/posts", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posts []map[string]any
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0]["text"])
	assert.Equal(t, "middle", posts[1]["text"])
	assert.Equal(t, "oldest", posts[2]["text"])
}

func TestGetPost(t *testing.T) {
	_, app := setupTestApp(t)
	token := registerUser(t, app, "Getter", "getter@example.com", "secret123")
	post := createPost(t, app, token, "findable")

	t.Run("by id", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", fmt.Sprintf("/api/posts/%d", postID(t, post)), token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), "findable")
	})

	t.Run("missing id is a 404", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/posts/9999", token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(raw), "Post not found")
	})

	t.Run("malformed id reads as a 404, not a server error", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/posts/zzz", token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(raw), "Post not found")
	})
}

func TestDeletePost(t *testing.T) {
	_, app := setupTestApp(t)
	owner := registerUser(t, app, "Owner", "owner@example.com", "secret123")
	intruder := registerUser(t, app, "Intruder", "intruder@example.com", "secret123")
	post := createPost(t, app, owner, "mine")

	t.Run("non-owner is rejected", func(t *testing.T) {
		resp, raw := doJSON(t, app, "DELETE", fmt.Sprintf("/api/posts/%d", postID(t, post)), intruder, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(raw), "not authorised")
	})

	t.Run("owner removes the post", func(t *testing.T) {
		resp, raw := doJSON(t, app, "DELETE", fmt.Sprintf("/api/posts/%d", postID(t, post)), owner, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), "Post removed")

		resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/posts/%d", postID(t, post)), owner, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestLikeUnlike(t *testing.T) {
	_, app := setupTestApp(t)
	token := registerUser(t, app, "Liker", "liker@example.com", "secret123")
	post := createPost(t, app, token, "likeable")
	likePath := fmt.Sprintf("/api/posts/like/%d", postID(t, post))
	unlikePath := fmt.Sprintf("/api/posts/unlike/%d", postID(t, post))

	t.Run("first like succeeds", func(t *testing.T) {
		resp, raw := doJSON(t, app, "PUT", likePath, token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var likes []map[string]any
		require.NoError(t, json.Unmarshal(raw, &likes))
		assert.Len(t, likes, 1)
	})

	t.Run("second like is a domain error", func(t *testing.T) {
		resp, raw := doJSON(t, app, "PUT", likePath, token, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "Post already liked")
	})

	t.Run("unlike then re-like succeeds", func(t *testing.T) {
		resp, raw := doJSON(t, app, "PUT", unlikePath, token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var likes []map[string]any
		require.NoError(t, json.Unmarshal(raw, &likes))
		assert.Empty(t, likes)

		resp, _ = doJSON(t, app, "PUT", likePath, token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unliking a post never liked is a domain error", func(t *testing.T) {
		other := createPost(t, app, token, "never liked")
		resp, raw := doJSON(t, app, "PUT", fmt.Sprintf("/api/posts/unlike/%d", postID(t, other)), token, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "Post has not yet been liked")
	})
}
