package api

import (
	"context"
	"errors"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
)

// Me resolves the identity behind the attached credential.
func (c *Client) Me(ctx context.Context) (model.Identity, error) {
	var id model.Identity
	err := c.get(ctx, "/auth/users/me/", nil, &id)
	return id, err
}

// ObtainToken exchanges account credentials for a token. The token is
// opaque: the client stores and forwards it, never inspects it.
func (c *Client) ObtainToken(ctx context.Context, username, secret string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: secret}

	var out struct {
		AuthToken string `json:"auth_token"`
	}
	if err := c.post(ctx, "/auth/token/login/", body, &out); err != nil {
		return "", err
	}
	if out.AuthToken == "" {
		return "", errors.New("login response missing auth_token")
	}
	return out.AuthToken, nil
}

// RevokeToken invalidates the attached credential server-side.
func (c *Client) RevokeToken(ctx context.Context) error {
	return c.post(ctx, "/auth/token/logout/", nil, nil)
}

// CreateAccount registers a new account. The caller logs in afterwards; the
// registration endpoint does not issue a token.
func (c *Client) CreateAccount(ctx context.Context, username, email, secret string) (model.Identity, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: secret}

	var id model.Identity
	err := c.post(ctx, "/auth/users/", body, &id)
	return id, err
}
