// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Run when stdin or stdout is redirected.
var ErrNotTerminal = errors.New("profile edit needs an interactive terminal, use 'profile update' instead")

// Run shows the dialog until the user closes it.
func Run(ctx context.Context, editor Editor, toasts Toasts) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	p := tea.NewProgram(New(ctx, editor, toasts), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("profile editor failed: %w", err)
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
