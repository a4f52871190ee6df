// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dashboard loads the storefront's reporting widgets: four metric
// cards, the daily revenue chart and the popular products chart. Every widget
// is read through the query cache so concurrent loads of one metric share a
// single request.
package dashboard
