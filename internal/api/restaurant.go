// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/staranto/storectl/internal/profile"
)

// ManagedRestaurant returns the restaurant managed by the signed-in user.
func (c *Client) ManagedRestaurant(ctx context.Context) (profile.Profile, error) {
	var p profile.Profile
	resp, err := c.r.R().
		SetContext(ctx).
		SetResult(&p).
		Get("/managed-restaurant")
	if err := check(resp, err); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

// UpdateProfile sends the present fields of patch.
func (c *Client) UpdateProfile(ctx context.Context, patch profile.Patch) error {
	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(patch).
		Put("/profile")
	return check(resp, err)
}
