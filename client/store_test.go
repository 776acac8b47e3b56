package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI stands in for the server, recording the tokens it sees.
func fakeAPI(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seenTokens []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["name"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]string{
					{"msg": "Name is required", "param": "name"},
					{"msg": "Please include a valid email", "param": "email"},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-register"})
	})
	mux.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid credentials"})
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		token := r.Header.Get("x-auth-token")
		seenTokens = append(seenTokens, token)
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "No token, authorisation denied"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "A", "email": "a@x.com"})
	})
	mux.HandleFunc("/api/profile/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"msg": "There is no profile for this user"})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, &seenTokens
}

func TestRegisterFlow(t *testing.T) {
	ts, seen := fakeAPI(t)
	store := NewStore(NewAPIClient(ts.URL), NewMemoryTokenStorage())

	err := store.Register("A", "a@x.com", "secret1")
	require.NoError(t, err)

	auth := store.Auth()
	assert.True(t, auth.IsAuthenticated)
	assert.False(t, auth.Loading)
	assert.Equal(t, "tok-register", auth.Token)
	require.NotNil(t, auth.User)
	assert.Equal(t, "A", auth.User.Name)

	// the persisted token was attached to the follow-up user load
	require.NotEmpty(t, *seen)
	assert.Equal(t, "tok-register", (*seen)[len(*seen)-1])
}

func TestRegisterFailureAddsOneAlertPerMessage(t *testing.T) {
	ts, _ := fakeAPI(t)
	storage := NewMemoryTokenStorage()
	store := NewStore(NewAPIClient(ts.URL), storage)

	err := store.Register("", "", "secret1")
	require.Error(t, err)

	alerts := store.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, "Name is required", alerts[0].Msg)
	assert.Equal(t, "Please include a valid email", alerts[1].Msg)
	assert.Equal(t, "danger", alerts[0].Kind)

	assert.False(t, store.Auth().IsAuthenticated)
	assert.Empty(t, storage.Get())
}

func TestLoginFailureIsUniform(t *testing.T) {
	ts, _ := fakeAPI(t)
	store := NewStore(NewAPIClient(ts.URL), NewMemoryTokenStorage())

	err := store.Login("a@x.com", "wrong")
	require.Error(t, err)

	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Invalid credentials", alerts[0].Msg)
	assert.False(t, store.Auth().IsAuthenticated)
}

func TestAlertDismissal(t *testing.T) {
	ts, _ := fakeAPI(t)
	store := NewStore(NewAPIClient(ts.URL), NewMemoryTokenStorage())

	id := store.AddAlert("Profile Created", "success")
	keep := store.AddAlert("Experience Added", "success")
	require.Len(t, store.Alerts(), 2)

	store.DismissAlert(id)
	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, keep, alerts[0].ID)
}

func TestStoredTokenIsRestored(t *testing.T) {
	ts, seen := fakeAPI(t)
	storage := NewMemoryTokenStorage()
	require.NoError(t, storage.Set("tok-restored"))

	store := NewStore(NewAPIClient(ts.URL), storage)
	require.NoError(t, store.LoadUser())

	assert.True(t, store.Auth().IsAuthenticated)
	assert.Equal(t, "tok-restored", (*seen)[len(*seen)-1])
}

func TestAuthErrorClearsToken(t *testing.T) {
	ts, _ := fakeAPI(t)
	storage := NewMemoryTokenStorage()
	store := NewStore(NewAPIClient(ts.URL), storage)

	// no token set: LoadUser fails and the slice downgrades
	err := store.LoadUser()
	require.Error(t, err)

	auth := store.Auth()
	assert.False(t, auth.IsAuthenticated)
	assert.Empty(t, auth.Token)
	assert.Empty(t, storage.Get())
}

func TestGetCurrentProfileError(t *testing.T) {
	ts, _ := fakeAPI(t)
	storage := NewMemoryTokenStorage()
	storage.Set("tok")
	store := NewStore(NewAPIClient(ts.URL), storage)

	err := store.GetCurrentProfile()
	require.Error(t, err)
	assert.Nil(t, store.Profile().Profile)
	assert.False(t, store.Profile().Loading)
}

func TestFileTokenStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "token")
	storage := NewFileTokenStorage(path)

	assert.Empty(t, storage.Get())
	require.NoError(t, storage.Set("tok-on-disk"))
	assert.Equal(t, "tok-on-disk", storage.Get())
	require.NoError(t, storage.Clear())
	assert.Empty(t, storage.Get())
	require.NoError(t, storage.Clear())
}
