// Package client talks to the launchpad API on behalf of launchpadctl.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"launchpad-api/internal/session"
)

const maxErrorBody = 64 << 10

var ErrUnauthorized = errors.New("session expired or invalid, log in again")

// APIError is a non-2xx answer carrying the server's error envelope.
type APIError struct {
	Status  int
	Message string
	Details json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Video struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	YouTubeVideoID string `json:"youtubeVideoId"`
	IsPublished    bool   `json:"isPublished"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type NewVideo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	YouTubeURL  string `json:"youtubeUrl"`
	IsPublished *bool  `json:"isPublished,omitempty"`
}

type VideoPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	YouTubeURL  *string `json:"youtubeUrl,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
	now      func() time.Time
}

func New(baseURL string, timeout time.Duration, sessions session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		now:      time.Now,
	}
}

// Login exchanges credentials for a token and persists it.
func (c *Client) Login(ctx context.Context, email, password string) (Profile, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string  `json:"token"`
		Admin Profile `json:"admin"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return Profile{}, err
	}
	if out.Token == "" {
		return Profile{}, errors.New("login response carried no token")
	}

	err := c.sessions.Save(session.Session{
		BaseURL:  c.baseURL,
		Token:    out.Token,
		AdminID:  out.Admin.ID,
		Email:    out.Admin.Email,
		Name:     out.Admin.Name,
		Role:     out.Admin.Role,
		LoggedIn: c.now().UTC(),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("saving session: %w", err)
	}
	return out.Admin, nil
}

func (c *Client) Logout() error {
	return c.sessions.Clear()
}

func (c *Client) Whoami() (session.Session, error) {
	return c.sessions.Load()
}

func (c *Client) ListVideos(ctx context.Context) ([]Video, error) {
	var out []Video
	err := c.authed(ctx, http.MethodGet, "/api/admin/videos", nil, &out)
	return out, err
}

func (c *Client) CreateVideo(ctx context.Context, v NewVideo) (Video, error) {
	var out Video
	err := c.authed(ctx, http.MethodPost, "/api/admin/videos", v, &out)
	return out, err
}

func (c *Client) UpdateVideo(ctx context.Context, id string, patch VideoPatch) (Video, error) {
	var out Video
	err := c.authed(ctx, http.MethodPatch, "/api/admin/videos/"+url.PathEscape(id), patch, &out)
	return out, err
}

func (c *Client) SetPublished(ctx context.Context, id string, published bool) (Video, error) {
	return c.UpdateVideo(ctx, id, VideoPatch{IsPublished: &published})
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.authed(ctx, http.MethodDelete, "/api/admin/videos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) authed(ctx context.Context, method, path string, body, out interface{}) error {
	s, err := c.sessions.Load()
	if err != nil {
		return err
	}
	err = c.do(ctx, method, path, s.Token, body, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	var env struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Message = env.Message
		apiErr.Details = env.Details
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
