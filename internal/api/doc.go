// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the storefront API. Authentication is
// cookie based: the cookie set when a sign-in link is followed is sent with
// every later request.
package api
