// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"resty.dev/v3"

	"github.com/staranto/storectl/internal/validation"
)

// ErrNoBaseURL is returned by New without a base URL.
var ErrNoBaseURL = errors.New("API base URL is not set")

const (
	// DefaultDelay is the artificial latency added when Options.Delay is on.
	DefaultDelay   = 2 * time.Second
	defaultTimeout = 30 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL string
	// Delay, when positive, is waited before every request. It makes the
	// optimistic UI observable against a fast local API.
	Delay   time.Duration
	Timeout time.Duration
	// Cookies seeds the jar, usually from the session store.
	Cookies []*http.Cookie
}

// Client talks to the storefront API.
type Client struct {
	r    *resty.Client
	base *url.URL
}

// sleep is replaced in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// New returns a Client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	if err := validation.Var("api.url", opts.BaseURL, "http_url"); err != nil {
		return nil, err
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse API base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetError(&errorBody{}).
		SetRedirectPolicy(resty.NoRedirectPolicy())

	if opts.Delay > 0 {
		d := opts.Delay
		log.Debugf("api delay enabled: %s", d)
		r.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
			log.Debugf("delaying %s %s by %s", req.Method, req.URL, d)
			return sleep(req.Context(), d)
		})
	}

	if len(opts.Cookies) > 0 {
		r.CookieJar().SetCookies(base, opts.Cookies)
	}

	return &Client{r: r, base: base}, nil
}

// Host identifies the API for session storage.
func (c *Client) Host() string {
	return c.base.Host
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.r.Close()
}

// check converts a failed response into an *HTTPError.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	herr := &HTTPError{
		Status: resp.StatusCode(),
		Method: resp.Request.Method,
		Path:   resp.Request.URL,
	}
	if raw := resp.Request.RawRequest; raw != nil && raw.URL != nil {
		herr.Path = raw.URL.Path
	}
	if body, ok := resp.Error().(*errorBody); ok && body != nil && body.Message != "" {
		herr.Message = body.Message
	} else if s := resp.String(); s != "" && len(s) < 200 { //nolint:mnd
		herr.Message = s
	}
	log.WithError(herr).Debug("api error")
	return herr
}
