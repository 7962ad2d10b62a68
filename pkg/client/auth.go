package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cadencehq/cadence/pkg/models"
)

// RegisterRequest represents an account-registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new artist account
func (c *Client) Register(ctx context.Context, username, password string) (*AuthResponse, error) {
	req := RegisterRequest{
		Username: username,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	var result AuthResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	// Automatically set the auth token for subsequent requests
	c.SetAuthToken(result.Token)

	return &result, nil
}

// Login authenticates an existing user
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Username: username,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	var result AuthResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	// Automatically set the auth token for subsequent requests
	c.SetAuthToken(result.Token)

	return &result, nil
}

// Logout ends the current session
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}

	if err := decodeResponse(resp, nil); err != nil {
		return err
	}

	// Clear the auth token
	c.SetAuthToken("")

	return nil
}

// CurrentUser retrieves the currently authenticated user
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("current user request failed: %w", err)
	}

	var result models.User
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
