package api

import (
	"context"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/models"
)

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login authenticates and returns the issued token and profile. The session
// layer decides what to persist; a response missing token or user is the
// caller's problem to reject.
func (c *HTTPClient) Login(ctx context.Context, username, password string, rememberMe bool) (*LoginResult, error) {
	body := map[string]any{
		"username":    username,
		"password":    password,
		"remember_me": rememberMe,
	}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout notifies the server. Local teardown never depends on this call
// succeeding.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me fetches the server's current view of the authenticated user.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// RegistrationAllowed reports whether self-service registration is open.
func (c *HTTPClient) RegistrationAllowed(ctx context.Context) (bool, error) {
	var out struct {
		AllowRegistration bool `json:"allow_registration"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/registration-status", nil, &out); err != nil {
		return false, err
	}
	return out.AllowRegistration, nil
}

// SendCode requests an SMS verification code for the given phone number.
func (c *HTTPClient) SendCode(ctx context.Context, phone string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/send-code", map[string]string{"phone": phone}, nil)
}

// BindPhone attaches a verified phone number to the account and returns the
// refreshed profile (phone masked by the server).
func (c *HTTPClient) BindPhone(ctx context.Context, phone, code string) (*models.User, error) {
	body := map[string]string{"phone": phone, "code": code}
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/bind-phone", body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ChangePassword replaces the account password.
func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password", body, nil)
}
