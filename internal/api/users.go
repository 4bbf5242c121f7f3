package api

import (
	"context"
	"net/http"

	"github.com/voguesoftware/projectdash/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Signup struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginResult is the backend's login payload: an opaque token plus a
// snapshot of the user for local display.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, s Signup) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
