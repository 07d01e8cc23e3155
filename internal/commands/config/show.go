package config

import (
	"context"
	"io"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			_, _ = io.WriteString(w, ui.Accent.Sprint(t.GetMessage("config.current", 0, nil))+"\n")
			ui.PrintKeyValue(w, t.GetMessage("config.file", 0, nil), cfg.PathFile)
			for _, key := range config.Keys() {
				value, err := config.Get(cfg, key)
				if err != nil {
					return err
				}
				ui.PrintKeyValue(w, key, value)
			}
			return nil
		},
	}
}
