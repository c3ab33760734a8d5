package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/spec-kit/nmt-console/internal/domain"
)

// ErrEmptyToken is returned when the backend accepts credentials but sends no token.
var ErrEmptyToken = errors.New("login response carried no access token")

// Login exchanges credentials for a bearer token. The body is form-encoded.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out TokenResponse
	req := c.request(withCredentialExchange(ctx)).
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/auth/login"); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return out.AccessToken, nil
}

// Register submits a new account as JSON.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleMember
	}
	var out domain.User
	req := c.request(ctx).SetBody(in).SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/auth/register"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that the backend answers at all.
func (c *Client) Ping(ctx context.Context) error {
	_, err := execute(c.request(ctx), http.MethodGet, "/health")
	return err
}
