// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package querycache

import "time"

// Staleness describes whether an entry may be served without reloading it.
type Staleness int

const (
	// Fresh entries are served until they are invalidated.
	Fresh Staleness = iota
	// Stale entries are reloaded by the next FetchOrGet.
	Stale
	// NeverAutoRefresh entries are never reloaded on their own. Only an
	// explicit Invalidate or Remove makes the loader run again.
	NeverAutoRefresh
)

func (s Staleness) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case NeverAutoRefresh:
		return "never-auto-refresh"
	default:
		return "unknown"
	}
}

// Entry is one cached value. Entries are never modified after they are
// stored; every write publishes a new Entry.
type Entry[V any] struct {
	Key       Key
	Value     V
	Staleness Staleness
	FetchedAt time.Time
}

// usable reports whether the entry can be returned by FetchOrGet without
// calling the loader.
func (e *Entry[V]) usable() bool {
	return e.Staleness != Stale
}
