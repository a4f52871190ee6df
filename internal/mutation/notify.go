// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mutation

import "github.com/staranto/storectl/internal/querycache"

// Kind tells a Notifier how a mutation ended.
type Kind int

const (
	// Success is signaled after a committed mutation.
	Success Kind = iota
	// Failure is signaled after a rollback.
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Signal is emitted once per completed mutation.
type Signal struct {
	Kind    Kind
	Message string
	Key     querycache.Key
	// Err is the remote failure for Failure signals.
	Err error
}

// Notifier receives the outcome of each mutation. Rendering is up to the
// implementation.
type Notifier interface {
	Notify(Signal)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Signal)

func (f NotifierFunc) Notify(s Signal) { f(s) }

type nopNotifier struct{}

func (nopNotifier) Notify(Signal) {}
