// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"os/exec"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/api"
	"github.com/staranto/storectl/internal/config"
	"github.com/staranto/storectl/internal/dashboard"
	"github.com/staranto/storectl/internal/meta"
	"github.com/staranto/storectl/internal/notify"
	"github.com/staranto/storectl/internal/profile"
	"github.com/staranto/storectl/internal/session"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr storectl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "storectl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stdout and stderr are the root command's writers so tests can capture them.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// CommandBuilder constructs a cli.Command with the shared wiring: metadata,
// the tldr flag, optional output flags and the flag validator.
type CommandBuilder struct {
	Name        string
	Usage       string
	UsageText   string
	Flags       []cli.Flag
	Commands    []*cli.Command
	Action      func(context.Context, *cli.Command) error
	Meta        meta.Meta
	OutputFlags bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := append(cb.Flags, NewTLDRFlag())
	if cb.OutputFlags {
		ns := cb.Meta.Namespace
		if ns == "" {
			ns = cb.Name
		}
		flags = append(flags, NewGlobalFlags(ns)...)
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:    flags,
		Commands: cb.Commands,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}

// NewClient builds an API client from the environment and config, with the
// stored session cookies, if any, in its jar.
func NewClient() (*api.Client, error) {
	settings, err := config.LoadAPI()
	if err != nil {
		return nil, err
	}

	opts := api.Options{BaseURL: settings.URL}
	if settings.Delay {
		opts.Delay = api.DefaultDelay
	}

	host := apiHost(settings.URL)
	cookies, err := session.Read(host)
	switch {
	case err == nil:
		opts.Cookies = cookies
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrDisabled):
		log.Debugf("no stored session for %s", host)
	default:
		log.WithError(err).Warn("failed to read stored session")
	}

	return api.New(opts)
}

// apiHost is the session key of an API URL. It matches api.Client.Host.
func apiHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Host
}

// NewProfileService wires the profile cache and coordinator to client.
// Mutation outcomes are printed to w.
func NewProfileService(client *api.Client, w io.Writer, color bool) *profile.Service {
	return profile.NewService(client, profile.NewCache(), notify.NewConsole(w, color))
}

// NewDashboardService wires the metric cache to client.
func NewDashboardService(client *api.Client) *dashboard.Service {
	return dashboard.NewService(client, dashboard.NewCache())
}

// parseDate reads a --from/--to value in the local zone.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
