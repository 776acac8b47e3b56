package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/config"
	"devconnect/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// setupTestApp builds a server over in-memory storage and a Fiber app with
// the full route table registered.
func setupTestApp(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret: "test-secret-key",
	}
	srv := New(cfg, setupTestDB(t), nil)
	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

// registerUser registers an account and returns its token.
func registerUser(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()
	resp, raw := doJSON(t, app, "POST", "/api/users", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

// createProfile submits a minimal profile for the token's user.
func createProfile(t *testing.T, app *fiber.App, token string, fields map[string]string) map[string]any {
	t.Helper()
	body := map[string]string{
		"status": "Developer",
		"skills": "Go, Postgres",
	}
	for k, v := range fields {
		body[k] = v
	}
	resp, raw := doJSON(t, app, "POST", "/api/profile", token, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var profile map[string]any
	require.NoError(t, json.Unmarshal(raw, &profile))
	return profile
}

// createPost publishes a post and returns its decoded body.
func createPost(t *testing.T, app *fiber.App, token, text string) map[string]any {
	t.Helper()
	resp, raw := doJSON(t, app, "POST", "/api/posts", token, map[string]string{"text": text})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var post map[string]any
	require.NoError(t, json.Unmarshal(raw, &post))
	return post
}
