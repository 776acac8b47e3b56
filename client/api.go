// Package client provides the API client and the state container mirroring
// server resources: alert, auth and profile slices updated by typed actions.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"devconnect/github"
	"devconnect/models"
)

// APIError is a decoded error response from the API.
type APIError struct {
	Status int
	Msg    string
	Fields []models.FieldError
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Fields) > 0 {
		return e.Fields[0].Msg
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Messages returns the user-facing failure messages, one per field error.
func (e *APIError) Messages() []string {
	if len(e.Fields) == 0 {
		if e.Msg == "" {
			return nil
		}
		return []string{e.Msg}
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Msg)
	}
	return msgs
}

// APIClient talks to the devconnect API. The token, when set, is attached to
// every request in the x-auth-token header.
type APIClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewAPIClient creates a client rooted at baseURL (e.g. "http://localhost:5000").
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs or clears the auth token attached to requests.
func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *APIClient) do(method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("x-auth-token", c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Msg    string              `json:"msg"`
			Errors []models.FieldError `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Msg = payload.Msg
			apiErr.Fields = payload.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates an account and returns the issued token.
func (c *APIClient) Register(name, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/api/users", map[string]string{
		"name": name, "email": email, "password": password,
	}, &resp)
	return resp.Token, err
}

// Login authenticates and returns the issued token.
func (c *APIClient) Login(email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/api/auth", map[string]string{
		"email": email, "password": password,
	}, &resp)
	return resp.Token, err
}

// LoadUser fetches the authenticated account, password omitted.
func (c *APIClient) LoadUser() (*models.User, error) {
	var user models.User
	if err := c.do(http.MethodGet, "/api/auth", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentProfile fetches the caller's profile.
func (c *APIClient) GetCurrentProfile() (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(http.MethodGet, "/api/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles fetches every profile.
func (c *APIClient) GetProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := c.do(http.MethodGet, "/api/profile", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfileByUserID fetches the profile owned by the given user.
func (c *APIClient) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/api/profile/user/%d", userID)
	if err := c.do(http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetGithubRepos fetches the user's latest repositories via the API proxy.
func (c *APIClient) GetGithubRepos(username string) ([]github.Repo, error) {
	var repos []github.Repo
	path := fmt.Sprintf("/api/profile/github/%s", username)
	if err := c.do(http.MethodGet, path, nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ProfileForm is the upsert-profile request body.
type ProfileForm struct {
	Company        string `json:"company,omitempty"`
	Website        string `json:"website,omitempty"`
	Location       string `json:"location,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername,omitempty"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	Facebook       string `json:"facebook,omitempty"`
	Linkedin       string `json:"linkedin,omitempty"`
	Instagram      string `json:"instagram,omitempty"`
}

// CreateProfile creates or updates the caller's profile.
func (c *APIClient) CreateProfile(form ProfileForm) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(http.MethodPost, "/api/profile", form, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// HistoryForm covers experience and education entries; unused fields are
// ignored by the respective endpoint.
type HistoryForm struct {
	Title        string `json:"title,omitempty"`
	Company      string `json:"company,omitempty"`
	School       string `json:"school,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldofstudy,omitempty"`
	Location     string `json:"location,omitempty"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// AddExperience appends a work-history entry to the caller's profile.
func (c *APIClient) AddExperience(form HistoryForm) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(http.MethodPut, "/api/profile/experience", form, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddEducation appends a schooling entry to the caller's profile.
func (c *APIClient) AddEducation(form HistoryForm) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(http.MethodPut, "/api/profile/education", form, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteExperience removes a work-history entry by id.
func (c *APIClient) DeleteExperience(id uint) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/api/profile/experience/%d", id)
	if err := c.do(http.MethodDelete, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteEducation removes a schooling entry by id.
func (c *APIClient) DeleteEducation(id uint) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/api/profile/education/%d", id)
	if err := c.do(http.MethodDelete, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteAccount removes the caller's account, profile and posts.
func (c *APIClient) DeleteAccount() error {
	return c.do(http.MethodDelete, "/api/profile", nil, nil)
}

// CreatePost publishes a feed post.
func (c *APIClient) CreatePost(text string) (*models.Post, error) {
	var post models.Post
	if err := c.do(http.MethodPost, "/api/posts", map[string]string{"text": text}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts fetches the feed, newest first.
func (c *APIClient) GetPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a single post.
func (c *APIClient) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the caller's own post.
func (c *APIClient) DeletePost(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

// LikePost likes a post, returning the updated likes list.
func (c *APIClient) LikePost(id uint) ([]models.Like, error) {
	var likes []models.Like
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/posts/like/%d", id), nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// UnlikePost removes the caller's like, returning the updated likes list.
func (c *APIClient) UnlikePost(id uint) ([]models.Like, error) {
	var likes []models.Like
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/posts/unlike/%d", id), nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// AddComment comments on a post, returning the updated comments list.
func (c *APIClient) AddComment(postID uint, text string) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/api/posts/comment/%d", postID)
	if err := c.do(http.MethodPost, path, map[string]string{"text": text}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes the caller's own comment.
func (c *APIClient) DeleteComment(postID, commentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/api/posts/comment/%d/%d", postID, commentID)
	if err := c.do(http.MethodDelete, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
