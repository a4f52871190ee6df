// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/storectl/internal/meta"
)

const bashCompletionScript = `# bash completion for storectl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_storectl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "dashboard profile signin signout completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
        dashboard)
            local opts="$common --from --to --widget -w"
            if [[ "$prev" == "--widget" || "$prev" == "-w" ]]; then
                COMPREPLY=( $(compgen -W "all cards revenue popular" -- "$cur") )
                return 0
            fi
            ;;
        profile)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "show update edit" -- "$cur") )
                return 0
            fi
            case "${COMP_WORDS[2]}" in
                update)
                    local opts="$common --name -n --description -d --no-description --dry-run"
                    ;;
                edit)
                    local opts="--tldr"
                    ;;
                *)
                    local opts="$common"
                    ;;
            esac
            ;;
        signin)
            local opts="--email -e --link -l --tldr"
            ;;
        signout)
            local opts="--tldr"
            ;;
        completion)
            local opts="bash zsh"
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _storectl storectl
`

const zshCompletionScript = `#compdef storectl

_storectl() {
  local -a cmds
  cmds=(
    'dashboard:store metrics'
    'profile:store profile'
    'signin:sign in to the storefront API'
    'signout:sign out and forget the stored session'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'storectl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    dashboard)
      _arguments -C \
        $common \
        '--from[first day]:date' \
        '--to[last day]:date' \
        '(-w --widget)'{-w,--widget}'[widget]:widget:(all cards revenue popular)'
      ;;
    profile)
      if (( CURRENT == 3 )); then
        _values 'subcommand' show update edit
        return
      fi
      case $words[3] in
        update)
          _arguments -C \
            $common \
            '(-n --name)'{-n,--name}'[new name]:name' \
            '(-d --description)'{-d,--description}'[new description]:description' \
            '--no-description[clear the description]' \
            '--dry-run[show the change only]'
          ;;
        edit)
          _arguments -C '--tldr[show tldr page]'
          ;;
        *)
          _arguments -C $common
          ;;
      esac
      ;;
    signin)
      _arguments -C \
        '(-e --email)'{-e,--email}'[e-mail address]:email' \
        '(-l --link)'{-l,--link}'[sign-in link]:link'
      ;;
    signout)
      _arguments -C '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _storectl storectl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(stdout(cmd), zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(stdout(cmd), bashCompletionScript)
		} else {
			fmt.Fprintln(stderr(cmd), "usage: storectl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "storectl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
