package api

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Register creates an account. user is sent as JSON unmodified.
func (c *Client) Register(ctx context.Context, user any) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, "/auth/register", user)
}

// Login exchanges credentials for a token. The body is form-encoded, not JSON.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Response, error) {
	form := encodePairs("username", creds.Username, "password", creds.Password)
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/auth/token",
		body:        strings.NewReader(form),
		contentType: contentTypeForm,
	})
}

// GetUserInfo fetches the current profile with an explicit bearer token.
// Failures are logged once and returned unchanged.
func (c *Client) GetUserInfo(ctx context.Context, token string) (*Response, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/users/me",
		header: authHeader(token),
	})
	if err != nil {
		c.logger.Error("fetch user info failed", zap.Error(err))
		return resp, err
	}
	return resp, nil
}

// UpdateUserInfo sends a profile update with an explicit bearer token.
func (c *Client) UpdateUserInfo(ctx context.Context, token string, data any) (*Response, error) {
	body, err := encodeJSON(data)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, call{
		method:      http.MethodPut,
		path:        "/users/me/update",
		body:        body,
		contentType: contentTypeJSON,
		header:      authHeader(token),
	})
}

// GetUsers lists users (alternate backend configuration).
func (c *Client) GetUsers(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/users/"})
}

// GetUser fetches a single user by id (alternate backend configuration).
func (c *Client) GetUser(ctx context.Context, id string) (*Response, error) {
	path, err := idPath("/users/", id, "")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, call{method: http.MethodGet, path: path})
}

// CreateUser posts a user object to /users/ (alternate backend configuration).
func (c *Client) CreateUser(ctx context.Context, user any) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, "/users/", user)
}
