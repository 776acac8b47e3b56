package server

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	_, app := setupTestApp(t)

	tests := []struct {
		name           string
		requestBody    map[string]string
		expectedStatus int
		wantToken      bool
	}{
		{
			name: "valid registration",
			requestBody: map[string]string{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "password123",
			},
			expectedStatus: fiber.StatusOK,
			wantToken:      true,
		},
		{
			name: "missing name",
			requestBody: map[string]string{
				"email":    "test2@example.com",
				"password": "password123",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "malformed email",
			requestBody: map[string]string{
				"name":     "Test User",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "short password",
			requestBody: map[string]string{
				"name":     "Test User",
				"email":    "test3@example.com",
				"password": "12345",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "duplicate email",
			requestBody: map[string]string{
				"name":     "Other User",
				"email":    "test@example.com",
				"password": "password123",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, "POST", "/api/users", "", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(raw))

			var response map[string]any
			require.NoError(t, json.Unmarshal(raw, &response))
			if tt.wantToken {
				assert.NotEmpty(t, response["token"])
			} else {
				assert.Nil(t, response["token"])
			}
		})
	}
}

func TestRegisterValidationIncludesFieldErrors(t *testing.T) {
	_, app := setupTestApp(t)

	resp, raw := doJSON(t, app, "POST", "/api/users", "", map[string]string{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var response struct {
		Errors []struct {
			Msg   string `json:"msg"`
			Param string `json:"param"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &response))
	require.Len(t, response.Errors, 3)

	params := make([]string, 0, 3)
	for _, e := range response.Errors {
		params = append(params, e.Param)
		assert.NotEmpty(t, e.Msg)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, params)
}

func TestLogin(t *testing.T) {
	_, app := setupTestApp(t)
	registerUser(t, app, "Login User", "login@example.com", "secret123")

	t.Run("valid credentials return a token", func(t *testing.T) {
		resp, raw := doJSON(t, app, "POST", "/api/auth", "", map[string]string{
			"email":    "login@example.com",
			"password": "secret123",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		respWrong, rawWrong := doJSON(t, app, "POST", "/api/auth", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		respUnknown, rawUnknown := doJSON(t, app, "POST", "/api/auth", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "secret123",
		})

		assert.Equal(t, fiber.StatusBadRequest, respWrong.StatusCode)
		assert.Equal(t, fiber.StatusBadRequest, respUnknown.StatusCode)
		assert.Equal(t, rawWrong, rawUnknown)
	})

	t.Run("missing password is a validation error", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/auth", "", map[string]string{
			"email": "login@example.com",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestTokenSubjectMatchesUser(t *testing.T) {
	srv, app := setupTestApp(t)
	token := registerUser(t, app, "Subject User", "subject@example.com", "secret123")

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		return []byte(srv.config.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)

	resp, raw := doJSON(t, app, "GET", "/api/auth", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user map[string]any
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, sub, strconv.Itoa(int(user["id"].(float64))))
}

func TestGetCurrentUser(t *testing.T) {
	_, app := setupTestApp(t)
	token := registerUser(t, app, "A", "a@x.com", "secret1")

	t.Run("returns the user without the password", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/auth", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var user map[string]any
		require.NoError(t, json.Unmarshal(raw, &user))
		assert.Equal(t, "A", user["name"])
		assert.Equal(t, "a@x.com", user["email"])
		assert.NotContains(t, user, "password")
		assert.Contains(t, user["avatar"], "gravatar.com")
	})

	t.Run("missing token yields 401", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/auth", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(raw), "No token")
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		resp, raw := doJSON(t, app, "GET", "/api/auth", "not.a.token", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(raw), "Token is not valid")
	})
}
