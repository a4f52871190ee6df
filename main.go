// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/storectl/internal/command"
	"github.com/staranto/storectl/internal/config"
	mylog "github.com/staranto/storectl/internal/log"
	"github.com/staranto/storectl/internal/session"
	"github.com/staranto/storectl/internal/version"
)

var ctx = context.Background()

// defaultSessionTTL is how long, in hours, an unused session is kept.
const defaultSessionTTL = 24 * 30

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	// Best-effort: drop sessions nobody has used for a while.
	hours, _ := config.GetInt("session.ttl", defaultSessionTTL)
	if err := session.Purge(hours); err != nil {
		// Non-fatal: print to stderr and continue.
		fmt.Fprintln(os.Stderr, err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands argument sets from the config file. A "@name"
// argument is replaced by the list under "<command>.name"; without one, the
// "<command>.defaults" list is inserted right after the command. Explicit
// arguments follow the set, so they win.
func mangleArguments(args []string) []string {
	// Short-circuit for --help/-h. If help is requested, just keep the command
	// path and add --help flag.
	for i, a := range args {
		if a == "--help" || a == "-h" {
			return append(append([]string{}, args[:i]...), "--help")
		}
	}

	// Command and subcommand words come first. Sets go after them.
	idx := 1
	for idx < len(args) && !strings.HasPrefix(args[idx], "-") && !strings.HasPrefix(args[idx], "@") {
		idx++
	}
	if idx > 3 { //nolint:mnd
		idx = 3
	}
	ns := strings.Join(args[1:idx], ".")

	out := append([]string{}, args[:idx]...)
	set := "defaults"
	rest := make([]string, 0, len(args)-idx)
	for _, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	setArgs, _ := config.GetStringSlice(ns + "." + set)
	if len(setArgs) == 0 && strings.Contains(ns, ".") {
		setArgs, _ = config.GetStringSlice(args[1] + "." + set)
	}
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
