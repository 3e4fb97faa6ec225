package api

import (
	"context"
	"net/http"

	"github.com/aretw0/notely/pkg/core"
)

// Login authenticates the user and returns the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (core.AuthResult, error) {
	return call[core.AuthResult](ctx, c, request{
		op:      "login",
		message: MsgLogin,
		method:  http.MethodPost,
		path:    "/login/",
		body:    core.Credentials{Username: username, Password: password},
	})
}

// Register creates an account and returns a token for it.
func (c *Client) Register(ctx context.Context, username, password string) (core.AuthResult, error) {
	return call[core.AuthResult](ctx, c, request{
		op:      "register",
		message: MsgRegister,
		method:  http.MethodPost,
		path:    "/register/",
		body:    core.Credentials{Username: username, Password: password},
	})
}

// Logout invalidates token on the backend. The response body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{
		op:      "logout",
		message: MsgLogout,
		method:  http.MethodPost,
		path:    "/logout/",
		token:   token,
	}, nil)
}
