// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/command"
)

// Doc generator. Walks the storectl command tree and writes
//   - docs/man/share/man1/storectl-<cmd>.1 via md2man
//   - docs/tldr/storectl-<cmd>.md from the examples below

var examples = map[string][]example{
	"signin": {
		{"Request a sign-in link", "storectl signin --email {{manager@example.com}}"},
		{"Finish signing in with the link from the e-mail", "storectl signin --link {{http://localhost:3333/auth-links/authenticate?code=...}}"},
	},
	"signout": {
		{"Sign out and forget the stored session", "storectl signout"},
	},
	"profile-show": {
		{"Show the store profile", "storectl profile show --titles"},
		{"Show the store profile as JSON", "storectl profile show -o json"},
	},
	"profile-update": {
		{"Rename the store", "storectl profile update --name {{Bob's Grill}}"},
		{"Clear the description", "storectl profile update --no-description"},
		{"Preview a change without sending it", "storectl profile update --name {{Bob's Grill}} --dry-run"},
	},
	"profile-edit": {
		{"Edit the profile interactively", "storectl profile edit"},
	},
	"dashboard": {
		{"Show every widget", "storectl dashboard --titles"},
		{"Show revenue for March", "storectl dashboard --widget revenue --from 2026-03-01 --to 2026-03-31"},
		{"Show popular products as YAML", "storectl dashboard -w popular -o yaml"},
	},
	"completion": {
		{"Load bash completion", "source <(storectl completion bash)"},
	},
}

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	if err := os.MkdirAll(manOutDir, 0o755); err != nil {
		fatalf("creating man output dir: %v", err)
	}
	if err := os.MkdirAll(tldrOutDir, 0o755); err != nil {
		fatalf("creating tldr output dir: %v", err)
	}

	app, err := command.InitApp(context.Background(), []string{"storectl"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	walk(app.Commands, nil, func(path []string, cmd *cli.Command) {
		name := strings.Join(path, "-")

		manBytes := md2man.Render([]byte(renderMarkdown(path, cmd)))
		manPath := filepath.Join(manOutDir, fmt.Sprintf("storectl-%s.1", name))
		if err := writeFileIfChanged(manPath, manBytes, writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", name, err)
		}

		tldr := buildTLDR(name, cmd.Usage, examples[name])
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("storectl-%s.md", name))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", name, err)
		}

		processed++
	})

	if processed == 0 {
		fatalf("no commands found")
	}
}

// walk calls fn for every runnable command, depth first.
func walk(cmds []*cli.Command, parent []string, fn func([]string, *cli.Command)) {
	for _, c := range cmds {
		path := append(append([]string(nil), parent...), c.Name)
		if c.Action != nil {
			fn(path, c)
		}
		walk(c.Commands, path, fn)
	}
}

func renderMarkdown(path []string, cmd *cli.Command) string {
	var b strings.Builder
	title := strings.ToUpper("storectl-" + strings.Join(path, "-"))
	fmt.Fprintf(&b, "%s 1 \"\" \"storectl\"\n", title)
	b.WriteString("=====\n\n")

	b.WriteString("# NAME\n\n")
	fmt.Fprintf(&b, "storectl %s - %s\n\n", strings.Join(path, " "), cmd.Usage)

	b.WriteString("# SYNOPSIS\n\n")
	for _, ln := range strings.Split(cmd.UsageText, "\n") {
		fmt.Fprintf(&b, "**%s**\n\n", strings.TrimSpace(ln))
	}

	var opts []string
	for _, f := range cmd.Flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}
		names := make([]string, 0, len(f.Names()))
		for _, n := range f.Names() {
			if len(n) == 1 {
				names = append(names, "-"+n)
			} else {
				names = append(names, "--"+n)
			}
		}
		line := "**" + strings.Join(names, "**, **") + "**"
		if df, ok := f.(cli.DocGenerationFlag); ok {
			if df.TakesValue() {
				line += "=*" + strings.ToLower(df.TypeName()) + "*"
			}
			line += "\n: " + df.GetUsage()
			if envs := df.GetEnvVars(); len(envs) > 0 {
				line += " (env: " + strings.Join(envs, ", ") + ")"
			}
		}
		opts = append(opts, line)
	}
	if len(opts) > 0 {
		b.WriteString("# OPTIONS\n\n")
		b.WriteString(strings.Join(opts, "\n\n"))
		b.WriteString("\n\n")
	}

	if exs := examples[strings.Join(path, "-")]; len(exs) > 0 {
		b.WriteString("# EXAMPLES\n\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "%s:\n\n    %s\n\n", ex.Desc, ex.Cmd)
		}
	}

	b.WriteString("# SEE ALSO\n\n")
	b.WriteString("**storectl.yaml** is read from $STORECTL_CFG, $XDG_CONFIG_HOME, $APPDATA or $HOME.\n")
	return b.String()
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

type example struct {
	Desc string
	Cmd  string
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	b.WriteString("# storectl-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + strings.ToUpper(short[:1]) + short[1:] + ".\n")
	} else {
		b.WriteString("> storectl " + strings.ReplaceAll(cmd, "-", " ") + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/storectl.\n\n")

	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`storectl " + strings.ReplaceAll(cmd, "-", " ") + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

func sanitizeCommand(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
