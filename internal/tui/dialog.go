// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui is the interactive store profile editor.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/storectl/internal/mutation"
	"github.com/staranto/storectl/internal/profile"
	"github.com/staranto/storectl/internal/validation"
)

// Editor is the part of profile.Service the dialog drives.
type Editor interface {
	Cached() (profile.Profile, bool)
	Update(ctx context.Context, f profile.Form) (mutation.Result[profile.Profile], error)
}

// Toasts yields the most recent mutation signal.
type Toasts interface {
	Last() (mutation.Signal, bool)
}

const (
	focusName = iota
	focusDescription
	focusSave
	focusCancel
	focusCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	activeButton = buttonStyle.BorderForeground(lipgloss.Color("#f6be00")).Bold(true)
	boxStyle     = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())
)

// updateDoneMsg carries the outcome of a submitted form.
type updateDoneMsg struct {
	res mutation.Result[profile.Profile]
	err error
}

// Model is the bubbletea model of the dialog.
type Model struct {
	ctx     context.Context
	editor  Editor
	toasts  Toasts
	name    textinput.Model
	desc    textinput.Model
	focus   int
	pending bool
	invalid *validation.ValidationError
	toast   *mutation.Signal
	err     error
	quit    bool
}

// New builds the dialog prefilled from the cached profile.
func New(ctx context.Context, editor Editor, toasts Toasts) Model {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Restaurant name"
	name.CharLimit = 120

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "Description"
	desc.CharLimit = 500

	if p, ok := editor.Cached(); ok {
		name.SetValue(p.Name)
		if p.Description != nil {
			desc.SetValue(*p.Description)
		}
	}
	name.Focus()

	return Model{ctx: ctx, editor: editor, toasts: toasts, name: name, desc: desc}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Pending reports whether a submitted update is still in flight.
func (m Model) Pending() bool {
	return m.pending
}

// Err returns the error of the last submit, if it failed.
func (m Model) Err() error {
	return m.err
}

func (m Model) form() profile.Form {
	d := m.desc.Value()
	return profile.Form{Name: strings.TrimSpace(m.name.Value()), Description: &d}
}

func (m Model) submit() (Model, tea.Cmd) {
	// One update at a time keeps edits of the profile serialized.
	if m.pending {
		return m, nil
	}

	f := m.form()
	if err := profile.Validate(f); err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			m.invalid = ve
			return m, nil
		}
		m.err = err
		return m, nil
	}

	m.invalid = nil
	m.toast = nil
	m.err = nil
	m.pending = true
	ctx, editor := m.ctx, m.editor
	return m, func() tea.Msg {
		res, err := editor.Update(ctx, f)
		return updateDoneMsg{res: res, err: err}
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = (i + focusCount) % focusCount
	m.name.Blur()
	m.desc.Blur()
	switch m.focus {
	case focusName:
		return m.name.Focus()
	case focusDescription:
		return m.desc.Focus()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateDoneMsg:
		m.pending = false
		m.err = msg.err
		if s, ok := m.toasts.Last(); ok {
			m.toast = &s
		}
		// Show what the cache holds now: the committed value or the rollback.
		if p, ok := m.editor.Cached(); ok && msg.err != nil {
			m.name.SetValue(p.Name)
			if p.Description != nil {
				m.desc.SetValue(*p.Description)
			} else {
				m.desc.SetValue("")
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "tab", "down":
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus(m.focus - 1)
			return m, cmd
		case "ctrl+s":
			return m.submit()
		case "enter":
			switch m.focus {
			case focusCancel:
				m.quit = true
				return m, tea.Quit
			case focusName, focusDescription:
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			default:
				return m.submit()
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusDescription:
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Store profile"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Update your store details visible to your customers."))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Name         %s\n", m.name.View())
	if m.invalid != nil && m.invalid.Has("name") {
		for _, p := range m.invalid.Problems {
			if p.Field == "name" {
				b.WriteString(errorStyle.Render("             "+p.String()) + "\n")
			}
		}
	}
	fmt.Fprintf(&b, "Description  %s\n\n", m.desc.View())

	save, cancel := buttonStyle, buttonStyle
	switch m.focus {
	case focusSave:
		save = activeButton
	case focusCancel:
		cancel = activeButton
	}
	saveLabel := "Save"
	if m.pending {
		saveLabel = "Saving..."
		save = save.Faint(true)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cancel.Render("Cancel"), " ", save.Render(saveLabel)))
	b.WriteString("\n\n")

	// The cache is read on every render so in-flight optimistic values and
	// rollbacks show up as they happen.
	if p, ok := m.editor.Cached(); ok {
		d := "-"
		if p.Description != nil {
			d = *p.Description
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("cached: %s | %s", p.Name, d)))
		b.WriteString("\n")
	}

	if m.toast != nil {
		if m.toast.Kind == mutation.Success {
			b.WriteString(okStyle.Render("✔ " + m.toast.Message))
		} else {
			b.WriteString(errorStyle.Render("✖ " + m.toast.Message))
		}
		b.WriteString("\n")
	} else if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString(mutedStyle.Render("tab: next  ctrl+s: save  esc: close"))
	return boxStyle.Render(b.String()) + "\n"
}
