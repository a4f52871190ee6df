// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mutation

import (
	"context"

	"github.com/apex/log"

	"github.com/staranto/storectl/internal/querycache"
)

// State is the lifecycle position of one mutation.
type State int

const (
	// Idle is the state before anything has been written.
	Idle State = iota
	// OptimisticApplied means the tentative value is in the store and the
	// remote write is in flight.
	OptimisticApplied
	// Committed means the remote write succeeded and the tentative value
	// stays.
	Committed
	// RolledBack means the remote write failed and the snapshot was
	// restored.
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case OptimisticApplied:
		return "optimistic-applied"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// Store is the subset of the query cache the coordinator writes through.
// *querycache.Cache satisfies it.
type Store[V any] interface {
	Get(querycache.Key) (querycache.Entry[V], bool)
	Set(querycache.Key, V)
	Restore(querycache.Entry[V])
	Remove(querycache.Key)
}

// MergeFunc overlays a patch on the current value.
type MergeFunc[V, P any] func(current V, patch P) V

// RemoteOp performs the remote write for a patch.
type RemoteOp[P any] func(ctx context.Context, patch P) error

// Context is the per-call record kept between the optimistic apply and the
// resolution. It is consumed exactly once and never shared.
type Context[V, P any] struct {
	Key querycache.Key
	// Snapshot is the entry seen before the mutation, nil when absent.
	Snapshot  *querycache.Entry[V]
	Patch     P
	Tentative V
	// Applied is false when there was nothing cached to merge into.
	Applied bool
}

// Result describes how a mutation ended.
type Result[V any] struct {
	State     State
	Tentative V
	Applied   bool
	Snapshot  *querycache.Entry[V]
}

// Coordinator performs remote writes while keeping a Store optimistically
// consistent.
type Coordinator[V, P any] struct {
	store    Store[V]
	merge    MergeFunc[V, P]
	notifier Notifier
	success  string
	failure  string
}

type options struct {
	notifier Notifier
	success  string
	failure  string
}

// Option configures a Coordinator.
type Option func(*options)

// WithNotifier sets the receiver of Success and Failure signals.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithMessages sets the human readable outcome messages.
func WithMessages(success, failure string) Option {
	return func(o *options) {
		o.success = success
		o.failure = failure
	}
}

// New creates a Coordinator writing through store.
func New[V, P any](store Store[V], merge MergeFunc[V, P], opts ...Option) *Coordinator[V, P] {
	o := options{
		notifier: nopNotifier{},
		success:  "Update succeeded.",
		failure:  "Update failed.",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = nopNotifier{}
	}

	return &Coordinator[V, P]{
		store:    store,
		merge:    merge,
		notifier: o.notifier,
		success:  o.success,
		failure:  o.failure,
	}
}

// Mutate snapshots the entry for key, applies patch to it optimistically,
// runs op and then either keeps the optimistic value or restores the
// snapshot. A failed op is returned as *MutationError after the rollback.
//
// Concurrent calls on the same key are not coalesced. Each captures its own
// snapshot, so rolling back a later call restores whatever an earlier,
// unresolved call had applied.
func (c *Coordinator[V, P]) Mutate(ctx context.Context, key querycache.Key, patch P, op RemoteOp[P]) (Result[V], error) {
	mc := c.apply(key, patch)

	err := op(ctx, patch)

	return c.resolve(mc, err)
}

func (c *Coordinator[V, P]) apply(key querycache.Key, patch P) *Context[V, P] {
	mc := &Context[V, P]{Key: key, Patch: patch}

	if ent, ok := c.store.Get(key); ok {
		snap := ent
		mc.Snapshot = &snap
		mc.Tentative = c.merge(ent.Value, patch)
		mc.Applied = true
		c.store.Set(key, mc.Tentative)
		log.Debugf("mutation %s: %s -> %s", key, Idle, OptimisticApplied)
	} else {
		log.Debugf("mutation %s: nothing cached, skipping optimistic write", key)
	}

	return mc
}

func (c *Coordinator[V, P]) resolve(mc *Context[V, P], err error) (Result[V], error) {
	res := Result[V]{
		Tentative: mc.Tentative,
		Applied:   mc.Applied,
		Snapshot:  mc.Snapshot,
	}

	if err == nil {
		res.State = Committed
		log.Debugf("mutation %s: %s -> %s", mc.Key, OptimisticApplied, Committed)
		c.notifier.Notify(Signal{Kind: Success, Message: c.success, Key: mc.Key})
		return res, nil
	}

	if mc.Snapshot != nil {
		c.store.Restore(*mc.Snapshot)
	} else {
		c.store.Remove(mc.Key)
	}
	res.State = RolledBack
	log.WithError(err).Debugf("mutation %s: %s -> %s", mc.Key, OptimisticApplied, RolledBack)
	c.notifier.Notify(Signal{Kind: Failure, Message: c.failure, Key: mc.Key, Err: err})

	return res, &MutationError{Key: mc.Key, Err: err}
}
