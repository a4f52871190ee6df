// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package querycache

import (
	"fmt"
	"sync/atomic"
)

// Metrics receives one call per cache event.
type Metrics interface {
	Hit()
	Miss()
	Load()
	LoadError()
	Write()
	Restore()
	Remove()
}

// NoopMetrics ignores every event.
type NoopMetrics struct{}

func (NoopMetrics) Hit()       {}
func (NoopMetrics) Miss()      {}
func (NoopMetrics) Load()      {}
func (NoopMetrics) LoadError() {}
func (NoopMetrics) Write()     {}
func (NoopMetrics) Restore()   {}
func (NoopMetrics) Remove()    {}

// Counters is a Metrics implementation backed by atomic counters.
type Counters struct {
	hits, misses, loads, loadErrors, writes, restores, removes atomic.Int64
}

func (c *Counters) Hit()       { c.hits.Add(1) }
func (c *Counters) Miss()      { c.misses.Add(1) }
func (c *Counters) Load()      { c.loads.Add(1) }
func (c *Counters) LoadError() { c.loadErrors.Add(1) }
func (c *Counters) Write()     { c.writes.Add(1) }
func (c *Counters) Restore()   { c.restores.Add(1) }
func (c *Counters) Remove()    { c.removes.Add(1) }

// Stats is a point in time copy of Counters.
type Stats struct {
	Hits, Misses, Loads, LoadErrors, Writes, Restores, Removes int64
}

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Loads:      c.loads.Load(),
		LoadErrors: c.loadErrors.Load(),
		Writes:     c.writes.Load(),
		Restores:   c.restores.Load(),
		Removes:    c.removes.Load(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("hits=%d misses=%d loads=%d load_errors=%d writes=%d restores=%d removes=%d",
		s.Hits, s.Misses, s.Loads, s.LoadErrors, s.Writes, s.Restores, s.Removes)
}
