// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package querycache

// Policy decides the staleness stamped on an entry whenever a value is
// written for a key, either by a load or by Set.
type Policy interface {
	Stamp() Staleness
	String() string
}

type stampPolicy struct {
	stamp Staleness
	name  string
}

func (p stampPolicy) Stamp() Staleness { return p.stamp }
func (p stampPolicy) String() string   { return p.name }

// NeverRefresh returns the policy under which a key, once fetched, is
// never loaded again for the lifetime of the cache.
func NeverRefresh() Policy {
	return stampPolicy{stamp: NeverAutoRefresh, name: "never-auto-refresh"}
}

// UntilInvalidated returns the policy under which entries are served until
// Invalidate is called for their key.
func UntilInvalidated() Policy {
	return stampPolicy{stamp: Fresh, name: "until-invalidated"}
}

// RefetchAlways returns the policy under which every FetchOrGet reloads the
// key. The last value stays readable through Get in the meantime.
func RefetchAlways() Policy {
	return stampPolicy{stamp: Stale, name: "refetch-always"}
}
