// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/api"
	"github.com/staranto/storectl/internal/meta"
	"github.com/staranto/storectl/internal/session"
)

// SigninCommandAction requests a sign-in link with --email, or completes the
// sign-in with --link and stores the session cookie.
func SigninCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "signin") {
		return nil
	}

	email, link := cmd.String("email"), cmd.String("link")
	if (email == "") == (link == "") {
		return errors.New("exactly one of --email or --link is required")
	}

	client, err := NewClient()
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	if email != "" {
		if err := client.Authenticate(ctx, email); err != nil {
			return fmt.Errorf("failed to request sign-in link: %w", err)
		}
		fmt.Fprintf(stdout(cmd), "A sign-in link was sent to %s.\n", email)
		return nil
	}

	cookies, err := client.CompleteSignIn(ctx, link)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	if err := session.Write(client.Host(), cookies); err != nil {
		if !errors.Is(err, session.ErrDisabled) {
			return err
		}
		fmt.Fprintln(stderr(cmd), "Session storage is disabled, the session will not be kept.")
	}
	fmt.Fprintf(stdout(cmd), "Signed in to %s.\n", client.Host())
	return nil
}

// SignoutCommandAction ends the session on the server and forgets the stored
// cookie. The local session is cleared even when the server call fails.
func SignoutCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "signout") {
		return nil
	}

	client, err := NewClient()
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	serr := client.SignOut(ctx)
	if serr != nil && errors.Is(serr, api.ErrUnauthorized) {
		serr = nil
	}
	if err := session.Clear(client.Host()); err != nil {
		return err
	}
	if serr != nil {
		return fmt.Errorf("failed to sign out: %w", serr)
	}

	fmt.Fprintln(stdout(cmd), "Signed out.")
	return nil
}

// SigninCommandBuilder constructs the "signin" command.
func SigninCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "signin",
		Usage:     "sign in to the storefront API",
		UsageText: "storectl signin --email <address>\nstorectl signin --link <sign-in link>",
		Flags: []cli.Flag{
			NewEmailFlag("signin", meta.Config.Source),
			&cli.StringFlag{
				Name:    "link",
				Aliases: []string{"l"},
				Usage:   "sign-in link received by e-mail",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, URLValidator)
				},
			},
		},
		Action: SigninCommandAction,
		Meta:   meta,
	}).Build()
}

// SignoutCommandBuilder constructs the "signout" command.
func SignoutCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "signout",
		Usage:     "sign out and forget the stored session",
		UsageText: "storectl signout",
		Action:    SignoutCommandAction,
		Meta:      meta,
	}).Build()
}
