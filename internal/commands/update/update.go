package update

import (
	"context"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/thomas-vilte/husky-installer/internal/update"
	"github.com/urfave/cli/v3"
)

type latestFinder interface {
	Latest(ctx context.Context) (string, error)
}

type UpdateCommandFactory struct {
	currentVersion string
	checker        latestFinder
	runner         shell.Runner
}

func NewUpdateCommandFactory(currentVersion string, checker latestFinder, runner shell.Runner) *UpdateCommandFactory {
	return &UpdateCommandFactory{
		currentVersion: currentVersion,
		checker:        checker,
		runner:         runner,
	}
}

func (f *UpdateCommandFactory) CreateCommand(trans *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: trans.GetMessage("update.usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			latest, err := f.checker.Latest(ctx)
			if err != nil {
				ui.HandleAppError(w, err, trans)
				return err
			}

			if !update.IsUpdateAvailable(f.currentVersion, latest) {
				ui.PrintSuccess(w, trans.GetMessage("update.up_to_date", 0, map[string]interface{}{"Version": f.currentVersion}))
				return nil
			}

			err = ui.WithSpinner(w,
				trans.GetMessage("update.updating", 0, map[string]interface{}{"Version": latest}),
				trans.GetMessage("update.success", 0, map[string]interface{}{"Version": latest}),
				trans.GetMessage("update.failed", 0, nil),
				func() error {
					_, err := f.runner.Run(ctx, "", "go", "install", update.InstallModule)
					return err
				},
			)
			if err != nil {
				if appErr, ok := err.(*errors.AppError); ok && appErr.Is(errors.ErrCommandNotFound) {
					err = appErr.WithSuggestion("Install Go from https://go.dev/dl or download a release binary")
				}
				ui.HandleAppError(w, err, trans)
				return err
			}
			return nil
		},
	}
}
