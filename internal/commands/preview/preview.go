package preview

import (
	"context"

	"github.com/thomas-vilte/husky-installer/internal/commands/completion_helper"
	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/installer"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

type PreviewCommandFactory struct{}

func NewPreviewCommandFactory() *PreviewCommandFactory {
	return &PreviewCommandFactory{}
}

func (f *PreviewCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: t.GetMessage("preview.usage", 0, nil),
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

			style := cfg.Style()
			if s := command.String("style"); s != "" {
				parsed, err := commitmsg.ParseStyle(s)
				if err != nil {
					ui.HandleAppError(w, err, t)
					return err
				}
				style = parsed
			}

			table, err := commitmsg.TableFor(style)
			if err != nil {
				return err
			}

			ui.PrintNote(w, t.GetMessage("preview.title", 0, nil), installer.PreviewNote(table))
			ui.PrintNote(w, t.GetMessage("preview.table_title", 0, map[string]interface{}{"Style": string(style)}), installer.PrefixTable(table))
			return nil
		},
	}
}
