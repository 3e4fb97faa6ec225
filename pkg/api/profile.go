package api

import (
	"context"
	"net/http"

	"github.com/aretw0/notely/pkg/core"
)

// GetProfile fetches the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (core.Profile, error) {
	return call[core.Profile](ctx, c, request{
		op:      "get_profile",
		message: MsgGetProfile,
		method:  http.MethodGet,
		path:    "/profile/",
		token:   token,
	})
}

// UpdateProfile sends the full profile form and returns the server's copy.
func (c *Client) UpdateProfile(ctx context.Context, token string, in core.ProfileInput) (core.Profile, error) {
	return call[core.Profile](ctx, c, request{
		op:      "update_profile",
		message: MsgUpdateProfile,
		method:  http.MethodPut,
		path:    "/profile/",
		token:   token,
		body:    in,
	})
}
