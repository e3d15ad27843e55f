package fleetapi

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/onebus/fleet-console/internal/errors"
)

const loginPath = "/users/logins"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and stores it in the session.
// A rejected login answers with the server's message.
func (c *Client) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return apperrors.Validation("email and password are required")
	}

	var out loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   loginPath,
		body:   loginRequest{Email: email, Password: password},
		anon:   true,
	}, &out)
	if err != nil {
		return err
	}
	if out.Token == "" {
		return apperrors.Remote("login answered without a token")
	}
	if err := c.session.Set(ctx, out.Token); err != nil {
		return err
	}
	c.logger.Info().Str("email", email).Msg("logged in")
	return nil
}

// Logout forgets the session token.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}
