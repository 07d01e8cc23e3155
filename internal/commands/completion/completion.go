package completion

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `#! /bin/bash

_husky_installer_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _husky_installer_bash_autocomplete husky-installer
`

const zshCompletionScript = `#compdef husky-installer

_husky_installer() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _husky_installer husky-installer
`

// Marker identifies the block appended to the shell rc file.
const Marker = "# husky-installer shell completion"

const loaderBlock = `
` + Marker + `
if command -v husky-installer >/dev/null 2>&1; then
	source <(husky-installer completion %s)
fi
`

type CompletionCommandFactory struct {
	homeDir func() (string, error)
	shell   func() string
}

func NewCompletionCommandFactory() *CompletionCommandFactory {
	return &CompletionCommandFactory{
		homeDir: os.UserHomeDir,
		shell:   func() string { return os.Getenv("SHELL") },
	}
}

func (f *CompletionCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "completion",
		Usage: t.GetMessage("completion.usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "bash",
				Usage: t.GetMessage("completion.bash_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := io.WriteString(cmd.Root().Writer, bashCompletionScript)
					return err
				},
			},
			{
				Name:  "zsh",
				Usage: t.GetMessage("completion.zsh_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := io.WriteString(cmd.Root().Writer, zshCompletionScript)
					return err
				},
			},
			{
				Name:  "install",
				Usage: t.GetMessage("completion.install_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					w := cmd.Root().Writer
					if err := f.install(w, t); err != nil {
						ui.HandleAppError(w, err, t)
						return err
					}
					return nil
				},
			},
		},
	}
}

func (f *CompletionCommandFactory) install(w io.Writer, t *i18n.Translations) error {
	home, err := f.homeDir()
	if err != nil {
		return errors.ErrWriteConfig.WithError(err)
	}

	var rcFile, shellName string
	switch sh := f.shell(); {
	case strings.Contains(sh, "zsh"):
		rcFile, shellName = filepath.Join(home, ".zshrc"), "zsh"
	case strings.Contains(sh, "bash"):
		rcFile, shellName = filepath.Join(home, ".bashrc"), "bash"
	default:
		return errors.ErrUnsupportedShell.WithContext("shell", sh)
	}

	data := map[string]interface{}{"File": rcFile}

	content, err := os.ReadFile(rcFile)
	if err == nil && strings.Contains(string(content), Marker) {
		ui.PrintInfo(w, t.GetMessage("completion.already_installed", 0, data))
		_, _ = fmt.Fprintf(w, "   source %s\n", rcFile)
		return nil
	}

	file, err := os.OpenFile(rcFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return errors.ErrWriteConfig.WithError(err).WithContext("path", rcFile)
	}
	defer func() { _ = file.Close() }()

	if _, err := fmt.Fprintf(file, loaderBlock, shellName); err != nil {
		return errors.ErrWriteConfig.WithError(err).WithContext("path", rcFile)
	}

	ui.PrintSuccess(w, t.GetMessage("completion.installed", 0, data))
	_, _ = fmt.Fprintf(w, "   source %s\n", rcFile)
	return nil
}
