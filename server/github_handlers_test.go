package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGithubRepos(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/gopher/repos":
			assert.Equal(t, "5", r.URL.Query().Get("per_page"))
			assert.Equal(t, "created", r.URL.Query().Get("sort"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"name":"repo-one","html_url":"https://github.com/gopher/repo-one","stargazers_count":7}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	cfg := &config.Config{
		JWTSecret:    "test-secret-key",
		GithubAPIURL: upstream.URL,
	}
	srv := New(cfg, setupTestDB(t), nil)
	app := fiber.New()
	srv.SetupRoutes(app)

	t.Run("proxies the latest repos", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/profile/github/gopher", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

		var repos []map[string]any
		require.NoError(t, json.Unmarshal(raw, &repos))
		require.Len(t, repos, 1)
		assert.Equal(t, "repo-one", repos[0]["name"])
		assert.Equal(t, float64(7), repos[0]["stargazers_count"])
	})

	t.Run("upstream miss maps to 404", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/profile/github/missing-user", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(raw), "No Github profile found")
	})
}
