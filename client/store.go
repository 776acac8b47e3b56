package client

import (
	"sync"

	"devconnect/github"
	"devconnect/models"

	"github.com/google/uuid"
)

// ActionType identifies a state transition.
type ActionType string

const (
	SetAlert    ActionType = "SET_ALERT"
	RemoveAlert ActionType = "REMOVE_ALERT"

	RegisterSuccess ActionType = "REGISTER_SUCCESS"
	RegisterFail    ActionType = "REGISTER_FAIL"
	UserLoaded      ActionType = "USER_LOADED"
	AuthError       ActionType = "AUTH_ERROR"
	LoginSuccess    ActionType = "LOGIN_SUCCESS"
	LoginFail       ActionType = "LOGIN_FAIL"
	LoggedOut       ActionType = "LOGOUT"
	AccountDeleted  ActionType = "ACCOUNT_DELETED"

	ProfileLoaded  ActionType = "GET_PROFILE"
	ProfilesLoaded ActionType = "GET_PROFILES"
	ReposLoaded    ActionType = "GET_REPOS"
	ProfileUpdated ActionType = "UPDATE_PROFILE"
	ProfileError   ActionType = "PROFILE_ERROR"
	ClearProfile   ActionType = "CLEAR_PROFILE"
)

// Action is a typed state transition with an optional payload.
type Action struct {
	Type    ActionType
	Payload any
}

// Alert is a transient user-facing message. The view layer is responsible
// for removing it after a timeout.
type Alert struct {
	ID   string
	Msg  string
	Kind string // "success" or "danger"
}

// AuthState is the authentication slice.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *models.User
}

// ProfileState is the profile slice.
type ProfileState struct {
	Profile  *models.Profile
	Profiles []models.Profile
	Repos    []github.Repo
	Loading  bool
}

// Store is the process-wide state container. All updates flow through
// Dispatch; reads return copies of the slices under the same lock.
type Store struct {
	mu sync.Mutex

	alerts  []Alert
	auth    AuthState
	profile ProfileState

	api    *APIClient
	tokens TokenStorage
}

// NewStore creates a store around an API client and token storage. A token
// left over from a previous session is attached to the client immediately.
func NewStore(api *APIClient, tokens TokenStorage) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		auth: AuthState{
			Token:   tokens.Get(),
			Loading: true,
		},
		profile: ProfileState{Loading: true},
	}
	api.SetToken(s.auth.Token)
	return s
}

// Dispatch reduces an action into the store synchronously.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reduceAlert(action)
	s.reduceAuth(action)
	s.reduceProfile(action)
}

func (s *Store) reduceAlert(action Action) {
	switch action.Type {
	case SetAlert:
		if alert, ok := action.Payload.(Alert); ok {
			s.alerts = append(s.alerts, alert)
		}
	case RemoveAlert:
		if id, ok := action.Payload.(string); ok {
			kept := s.alerts[:0]
			for _, a := range s.alerts {
				if a.ID != id {
					kept = append(kept, a)
				}
			}
			s.alerts = kept
		}
	}
}

func (s *Store) reduceAuth(action Action) {
	switch action.Type {
	case UserLoaded:
		s.auth.IsAuthenticated = true
		s.auth.Loading = false
		s.auth.User, _ = action.Payload.(*models.User)
	case RegisterSuccess, LoginSuccess:
		token, _ := action.Payload.(string)
		_ = s.tokens.Set(token)
		s.api.SetToken(token)
		s.auth.Token = token
		s.auth.IsAuthenticated = true
		s.auth.Loading = false
	case RegisterFail, AuthError, LoginFail, LoggedOut, AccountDeleted:
		_ = s.tokens.Clear()
		s.api.SetToken("")
		s.auth = AuthState{}
	}
}

func (s *Store) reduceProfile(action Action) {
	switch action.Type {
	case ProfileLoaded, ProfileUpdated:
		s.profile.Profile, _ = action.Payload.(*models.Profile)
		s.profile.Loading = false
	case ProfilesLoaded:
		s.profile.Profiles, _ = action.Payload.([]models.Profile)
		s.profile.Loading = false
	case ReposLoaded:
		s.profile.Repos, _ = action.Payload.([]github.Repo)
		s.profile.Loading = false
	case ProfileError:
		s.profile = ProfileState{Loading: false}
	case ClearProfile:
		s.profile = ProfileState{Loading: true}
	}
}

// Alerts returns a copy of the alert slice.
func (s *Store) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Auth returns the auth slice.
func (s *Store) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

// Profile returns the profile slice.
func (s *Store) Profile() ProfileState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// AddAlert dispatches a transient alert and returns its generated id.
func (s *Store) AddAlert(msg, kind string) string {
	id := uuid.New().String()
	s.Dispatch(Action{Type: SetAlert, Payload: Alert{ID: id, Msg: msg, Kind: kind}})
	return id
}

// DismissAlert removes an alert by id.
func (s *Store) DismissAlert(id string) {
	s.Dispatch(Action{Type: RemoveAlert, Payload: id})
}
