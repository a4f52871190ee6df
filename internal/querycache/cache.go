// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package querycache

import (
	"context"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"
)

// Loader performs the remote read for a key on a cache miss.
type Loader[V any] func(ctx context.Context) (V, error)

// Cache is a keyed store of previously fetched results. A Cache is an
// explicit instance scoped to one application session; it is safe for
// concurrent use.
type Cache[V any] struct {
	store   *store[V]
	sf      singleflight.Group
	opts    options
	metrics Metrics
}

type options struct {
	policy   Policy
	policies map[string]Policy
	metrics  Metrics
	now      func() time.Time
}

// Option configures a Cache.
type Option func(*options)

// WithDefaultPolicy sets the policy for keys without an explicit one. The
// default is NeverRefresh.
func WithDefaultPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithPolicy sets the policy for a single key.
func WithPolicy(key Key, p Policy) Option {
	return func(o *options) { o.policies[key.id()] = p }
}

// WithMetrics installs a Metrics sink.
func WithMetrics(m Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock overrides time.Now for FetchedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates an empty cache.
func New[V any](opts ...Option) *Cache[V] {
	o := options{
		policy:   NeverRefresh(),
		policies: make(map[string]Policy),
		metrics:  NoopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NoopMetrics{}
	}

	return &Cache[V]{
		store:   newStore[V](),
		opts:    o,
		metrics: o.metrics,
	}
}

// PolicyFor returns the policy in effect for key.
func (c *Cache[V]) PolicyFor(key Key) Policy {
	if p, ok := c.opts.policies[key.id()]; ok {
		return p
	}
	return c.opts.policy
}

// Get returns the entry for key. It has no side effects and never blocks.
func (c *Cache[V]) Get(key Key) (Entry[V], bool) {
	ent, ok := c.store.get(key.id())
	if !ok {
		return Entry[V]{}, false
	}
	return *ent, true
}

// FetchOrGet returns the cached value for key when its staleness allows it.
// Otherwise it calls loader, stores the result and returns it. Concurrent
// callers for the same key share a single loader call. Loader failures are
// returned as *FetchError and leave the cache untouched.
//
// The shared load is detached from the cancellation of any one caller. A
// caller whose ctx ends returns early with its ctx error, while the load runs
// to completion and still populates the cache for everyone else.
func (c *Cache[V]) FetchOrGet(ctx context.Context, key Key, loader Loader[V]) (V, error) {
	var zero V

	if ent, ok := c.store.get(key.id()); ok && ent.usable() {
		c.metrics.Hit()
		log.Debugf("querycache hit: %s (%s)", key, ent.Staleness)
		return ent.Value, nil
	}
	c.metrics.Miss()
	log.Debugf("querycache miss: %s", key)

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key.id(), func() (any, error) {
		c.metrics.Load()
		val, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		c.write(key, val)
		return val, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		log.Debugf("querycache caller gave up: %s", key)
		return zero, &FetchError{Key: key, Err: ctx.Err()}
	case res = <-ch:
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		c.metrics.LoadError()
		log.WithError(err).Debugf("querycache load failed: %s", key)
		return zero, &FetchError{Key: key, Err: err}
	}
	if shared {
		log.Debugf("querycache shared load: %s", key)
	}

	val, _ := v.(V)
	return val, nil
}

// Set unconditionally replaces the value for key and bumps FetchedAt. The
// write is visible to the next Get.
func (c *Cache[V]) Set(key Key, value V) {
	c.write(key, value)
}

// Restore writes back an entry previously returned by Get exactly as it was,
// including its staleness and FetchedAt.
func (c *Cache[V]) Restore(ent Entry[V]) {
	c.metrics.Restore()
	restored := ent
	c.store.put(ent.Key.id(), &restored)
	log.Debugf("querycache restore: %s", ent.Key)
}

// Invalidate marks the entry for key stale so the next FetchOrGet reloads it.
// It reports whether an entry existed.
func (c *Cache[V]) Invalidate(key Key) bool {
	ok := c.store.update(key.id(), func(e Entry[V]) Entry[V] {
		e.Staleness = Stale
		return e
	})
	if ok {
		log.Debugf("querycache invalidate: %s", key)
	}
	return ok
}

// Remove clears the entry for key. Removing an absent key is a no-op.
func (c *Cache[V]) Remove(key Key) {
	if c.store.delete(key.id()) {
		c.metrics.Remove()
		log.Debugf("querycache remove: %s", key)
	}
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	return c.store.size()
}

func (c *Cache[V]) write(key Key, value V) {
	c.metrics.Write()
	// Copy the key so callers can't alter a stored entry through their slice.
	k := append(Key(nil), key...)
	c.store.put(key.id(), &Entry[V]{
		Key:       k,
		Value:     value,
		Staleness: c.PolicyFor(key).Stamp(),
		FetchedAt: c.opts.now(),
	})
}
