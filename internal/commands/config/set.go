package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		ShellComplete: func(_ context.Context, command *cli.Command) {
			for _, key := range config.Keys() {
				_, _ = fmt.Fprintln(command.Root().Writer, key)
			}
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			if command.Args().Len() < 2 {
				err := errors.ErrInvalidConfig.
					WithError(fmt.Errorf("missing arguments")).
					WithSuggestion("husky-installer config set <key> <value>\nKeys: " + strings.Join(config.Keys(), ", "))
				ui.HandleAppError(w, err, t)
				return err
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			if err := config.Set(cfg, key, value); err != nil {
				ui.HandleAppError(w, err, t)
				return err
			}

			if err := config.SaveConfig(cfg); err != nil {
				ui.PrintError(w, t.GetMessage("config.save_failed", 0, nil))
				return err
			}

			saved, _ := config.Get(cfg, key)
			ui.PrintSuccess(w, t.GetMessage("config.set_success", 0, map[string]interface{}{
				"Key":   key,
				"Value": saved,
			}))
			return nil
		},
	}
}
