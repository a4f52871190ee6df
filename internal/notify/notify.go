// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package notify renders mutation outcomes for the user.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/staranto/storectl/internal/mutation"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Console prints one line toasts.
type Console struct {
	w     io.Writer
	color bool
	mu    sync.Mutex
}

// NewConsole writes to w. Color is only used when w is a terminal.
func NewConsole(w io.Writer, color bool) *Console {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		color = false
	}
	return &Console{w: w, color: color}
}

// Notify implements mutation.Notifier.
func (c *Console) Notify(s mutation.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mark, style := "✔", successStyle
	if s.Kind == mutation.Failure {
		mark, style = "✖", failureStyle
		log.WithError(s.Err).Warnf("%s %s", s.Key, s.Message)
	} else {
		log.Infof("%s %s", s.Key, s.Message)
	}

	if c.color {
		mark = style.Render(mark)
	}
	fmt.Fprintf(c.w, "%s %s\n", mark, s.Message)
}

// Recorder keeps every signal it receives.
type Recorder struct {
	mu      sync.Mutex
	signals []mutation.Signal
}

// Notify implements mutation.Notifier.
func (r *Recorder) Notify(s mutation.Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, s)
}

// Signals returns a copy of what has been recorded.
func (r *Recorder) Signals() []mutation.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mutation.Signal(nil), r.signals...)
}

// Last returns the most recent signal.
func (r *Recorder) Last() (mutation.Signal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.signals) == 0 {
		return mutation.Signal{}, false
	}
	return r.signals[len(r.signals)-1], true
}

// Fanout sends every signal to each notifier in turn.
type Fanout []mutation.Notifier

// Notify implements mutation.Notifier.
func (f Fanout) Notify(s mutation.Signal) {
	for _, n := range f {
		if n != nil {
			n.Notify(s)
		}
	}
}
