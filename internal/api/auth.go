// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNoSessionCookie is returned when a sign-in link sets no cookie.
var ErrNoSessionCookie = errors.New("sign-in link did not return a session")

// Authenticate asks the API to e-mail a sign-in link to email.
func (c *Client) Authenticate(ctx context.Context, email string) error {
	resp, err := c.r.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		Post("/authenticate")
	return check(resp, err)
}

// CompleteSignIn follows a sign-in link and returns the session cookies the
// API set. The client never follows redirects, so the link's redirect to the
// web app is left alone.
func (c *Client) CompleteSignIn(ctx context.Context, link string) ([]*http.Cookie, error) {
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("invalid sign-in link %q", link)
	}

	resp, err := c.r.R().
		SetContext(ctx).
		Get(u.String())
	if err := check(resp, err); err != nil {
		return nil, err
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return nil, ErrNoSessionCookie
	}
	c.r.CookieJar().SetCookies(c.base, cookies)
	return cookies, nil
}

// SignOut ends the session on the server.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.r.R().
		SetContext(ctx).
		Post("/sign-out")
	return check(resp, err)
}
