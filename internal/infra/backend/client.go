// Package backend is the bot's client for the web API. The bot never talks to
// the database directly; every user mutation goes through the same HTTP
// surface the Mini App uses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-birthday-app/internal/domain/model"
)

// UserPayload is the body of POST /api/user_data.
type UserPayload struct {
	UserID    int64   `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Photo     *string `json:"photo"`
}

// UserData is the body of GET /api/user_data/{id}.
type UserData struct {
	UserID    int64       `json:"user_id"`
	FirstName string      `json:"first_name"`
	LastName  *string     `json:"last_name"`
	Username  *string     `json:"username"`
	Photo     *string     `json:"photo"`
	Birthdate *model.Date `json:"birthdate"`
}

type Client struct {
	base string
	http *http.Client
	log  *zerolog.Logger
}

// New builds a client against baseURL. httpClient is injected so callers
// control timeouts and tests can stub transport; nil gets a 10s-timeout
// default.
func New(baseURL string, httpClient *http.Client, logger *zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
		log:  logger,
	}
}

// SubmitUser registers the user with the backend and returns the raw response
// body for logging. Any non-200 status is an error.
func (c *Client) SubmitUser(ctx context.Context, p UserPayload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal user payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/user_data", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit user: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("submit user: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return string(raw), nil
}

// FetchUser looks up a user by id. Any non-200 status (including 404) is an
// error; the bot treats all failures the same way.
func (c *Client) FetchUser(ctx context.Context, userID int64) (*UserData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/user_data/%d", c.base, userID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user %d: unexpected status %d", userID, resp.StatusCode)
	}

	var data UserData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &data, nil
}
