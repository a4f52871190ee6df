// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package querycache provides a keyed, read-through cache of remote query
// results. Every key carries a staleness policy that decides whether a cached
// value may be returned or must be loaded again. Writes replace whole entries
// atomically so readers never observe a partially written value.
package querycache
