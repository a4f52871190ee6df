// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/meta"
	"github.com/staranto/storectl/internal/notify"
	"github.com/staranto/storectl/internal/output"
	"github.com/staranto/storectl/internal/profile"
	"github.com/staranto/storectl/internal/tui"
)

var profileColumns = []string{"id", "name", "description", "managerId"}

// profileDataset renders p as a one row result.
func profileDataset(p profile.Profile) (output.Dataset, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return output.Dataset{}, fmt.Errorf("failed to encode profile: %w", err)
	}
	row := map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"managerId":   p.ManagerID,
	}
	return output.Dataset{
		Columns: profileColumns,
		Rows:    []map[string]interface{}{row},
		Raw:     raw,
	}, nil
}

// ProfileShowCommandAction prints the managed restaurant's profile.
func ProfileShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "profile") {
		return nil
	}

	client, err := NewClient()
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	opts := output.OptionsFromCommand(cmd)
	svc := NewProfileService(client, stderr(cmd), opts.Color)
	p, err := svc.Managed(ctx)
	if err != nil {
		return err
	}

	ds, err := profileDataset(p)
	if err != nil {
		return err
	}
	return output.Emit(ds, opts, stdout(cmd))
}

// patchFromFlags collects only the flags the user set. An unset flag leaves
// the field alone on the server.
func patchFromFlags(cmd *cli.Command) (profile.Patch, error) {
	var patch profile.Patch

	if cmd.IsSet("name") {
		patch.Name = profile.Some(cmd.String("name"))
	}
	if cmd.IsSet("description") && cmd.Bool("no-description") {
		return patch, errors.New("--description and --no-description are mutually exclusive")
	}
	if cmd.IsSet("description") {
		d := cmd.String("description")
		patch.Description = profile.Some(&d)
	}
	if cmd.Bool("no-description") {
		patch.Description = profile.Some[*string](nil)
	}

	if patch.Empty() {
		return patch, profile.ErrNothingToUpdate
	}
	return patch, nil
}

// ProfileUpdateCommandAction changes the profile from flags. With --dry-run
// the change is only shown.
func ProfileUpdateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "profile") {
		return nil
	}

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}

	client, err := NewClient()
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	opts := output.OptionsFromCommand(cmd)
	svc := NewProfileService(client, stderr(cmd), opts.Color)

	if cmd.Bool("dry-run") {
		before, after, err := svc.Preview(ctx, patch)
		if err != nil {
			return err
		}
		if err := profile.Validate(profile.FormFrom(after)); err != nil {
			return err
		}
		diff, err := profile.Diff(before, after, opts.Color)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Fprintln(stdout(cmd), "No changes.")
			return nil
		}
		fmt.Fprint(stdout(cmd), diff)
		return nil
	}

	res, err := svc.Apply(ctx, patch)
	if err != nil {
		return err
	}
	log.Debugf("profile update %s", res.State)

	p, _ := svc.Cached()
	ds, err := profileDataset(p)
	if err != nil {
		return err
	}
	return output.Emit(ds, opts, stdout(cmd))
}

// ProfileEditCommandAction opens the interactive editor.
func ProfileEditCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "profile") {
		return nil
	}

	client, err := NewClient()
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	// The dialog shows signals itself; the last one is repeated on exit.
	rec := &notify.Recorder{}
	svc := profile.NewService(client, profile.NewCache(), rec)
	if _, err := svc.Managed(ctx); err != nil {
		return err
	}

	if err := tui.Run(ctx, svc, rec); err != nil {
		return err
	}
	if s, ok := rec.Last(); ok {
		notify.NewConsole(stderr(cmd), true).Notify(s)
	}
	return nil
}

// ProfileCommandBuilder constructs the "profile" command and its subcommands.
func ProfileCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	sub := func(name string) meta.Meta {
		sm := m
		sm.Namespace = "profile." + name
		return sm
	}

	show := (&CommandBuilder{
		Name:        "show",
		Usage:       "show the store profile",
		UsageText:   "storectl profile show [options]",
		Action:      ProfileShowCommandAction,
		Meta:        sub("show"),
		OutputFlags: true,
	}).Build()

	update := (&CommandBuilder{
		Name:      "update",
		Usage:     "change the store profile",
		UsageText: "storectl profile update [--name <name>] [--description <text> | --no-description] [--dry-run]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "new restaurant name",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "new description",
			},
			&cli.BoolFlag{
				Name:        "no-description",
				Usage:       "clear the description",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "show the change without sending it",
				HideDefault: true,
			},
		},
		Action:      ProfileUpdateCommandAction,
		Meta:        sub("update"),
		OutputFlags: true,
	}).Build()

	edit := (&CommandBuilder{
		Name:      "edit",
		Usage:     "edit the store profile interactively",
		UsageText: "storectl profile edit",
		Action:    ProfileEditCommandAction,
		Meta:      sub("edit"),
	}).Build()

	return (&CommandBuilder{
		Name:      "profile",
		Usage:     "store profile",
		UsageText: "storectl profile <show|update|edit> [options]",
		Commands:  []*cli.Command{show, update, edit},
		Meta:      m,
	}).Build()
}
