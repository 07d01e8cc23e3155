package annotate

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/commands/completion_helper"
	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

type AnnotateCommandFactory struct{}

func NewAnnotateCommandFactory() *AnnotateCommandFactory {
	return &AnnotateCommandFactory{}
}

func (f *AnnotateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     t.GetMessage("annotate.usage", 0, nil),
		ArgsUsage: "<msg-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "style",
				Aliases: []string{"s"},
				Usage:   t.GetMessage("flags.style_usage", 0, nil),
			},
		},
		ShellComplete: completion_helper.StyleFlagComplete,
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			if command.Args().Len() < 1 {
				err := errors.ErrReadCommitMessage.
					WithError(fmt.Errorf("missing commit message file")).
					WithSuggestion("husky-installer annotate .git/COMMIT_EDITMSG")
				ui.HandleAppError(w, err, t)
				return err
			}
			path := command.Args().First()

			table, err := resolveTable(command.String("style"), cfg)
			if err != nil {
				ui.HandleAppError(w, err, t)
				return err
			}

			res, err := commitmsg.AnnotateFile(path, table)
			if err != nil {
				// The commit goes ahead with its message untouched.
				logger.Warn(ctx, "could not annotate commit message", "path", path, "error", err)
				ui.PrintWarning(w, t.GetMessage("annotate.io_failed", 0, map[string]interface{}{"Path": path}))
				return nil
			}

			printResult(w, t, res, table.Style())
			return nil
		},
	}
}

// resolveTable picks the style from the flag, else from the repository
// config, else from cfg.
func resolveTable(flag string, cfg *config.Config) (commitmsg.StyleTable, error) {
	if flag != "" {
		style, err := commitmsg.ParseStyle(flag)
		if err != nil {
			return commitmsg.StyleTable{}, err
		}
		return commitmsg.TableFor(style)
	}

	effective := cfg
	if dir, err := os.Getwd(); err == nil {
		if local, err := config.WithLocalOverrides(cfg, dir); err == nil {
			effective = local
		}
	}
	return commitmsg.TableFor(effective.Style())
}

func printResult(w io.Writer, t *i18n.Translations, res commitmsg.Result, style commitmsg.Style) {
	switch res.Outcome {
	case commitmsg.Prefixed:
		ui.PrintSuccess(w, t.GetMessage("annotate.prefixed", 0, map[string]interface{}{"Style": string(style)}))
		ui.PrintKeyValue(w, t.GetMessage("annotate.before", 0, nil), strings.TrimSpace(res.Original))
		ui.PrintKeyValue(w, t.GetMessage("annotate.after", 0, nil), res.Message)
	case commitmsg.AlreadyPrefixed:
		ui.PrintInfo(w, t.GetMessage("annotate.already_prefixed", 0, nil))
	case commitmsg.NoType:
		ui.PrintWarning(w, t.GetMessage("annotate.no_type", 0, nil))
	case commitmsg.UnknownType:
		ui.PrintInfo(w, t.GetMessage("annotate.unknown_type", 0, map[string]interface{}{"Type": res.Type}))
	}
}
