package api

import (
	"context"
	"net/http"

	"github.com/marqueehq/marquee/internal/types"
)

type loginRequest struct {
	UserEmail string `json:"user_email"`
	Password  string `json:"password"`
}

type registerRequest struct {
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	Password  string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type validateResponse struct {
	User types.User `json:"user"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (types.LoginResponse, error) {
	var resp types.LoginResponse
	req := loginRequest{UserEmail: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return types.LoginResponse{}, err
	}
	return resp, nil
}

// Register creates a new account. The backend does not log the user in;
// no token is returned.
func (c *Client) Register(ctx context.Context, email, userName, password string) (types.User, error) {
	var resp types.User
	req := registerRequest{UserEmail: email, UserName: userName, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return types.User{}, err
	}
	return resp, nil
}

// RequestPasswordReset asks the backend to start a password reset flow.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/password-reset", nil, passwordResetRequest{Email: email}, nil)
}

// ValidateToken checks a persisted token against the backend and returns the
// account it belongs to.
func (c *Client) ValidateToken(ctx context.Context, token string) (types.User, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}
	var resp validateResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/validate", headers, nil, &resp); err != nil {
		return types.User{}, err
	}
	return resp.User, nil
}
