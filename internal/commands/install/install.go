package install

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/git"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/installer"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"github.com/urfave/cli/v3"
)

type InstallCommandFactory struct {
	runner  shell.Runner
	version string
	getwd   func() (string, error)
}

func NewInstallCommandFactory(runner shell.Runner, version string) *InstallCommandFactory {
	return &InstallCommandFactory{
		runner:  runner,
		version: version,
		getwd:   os.Getwd,
	}
}

func (f *InstallCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "install",
		Aliases: []string{"init"},
		Usage:   t.GetMessage("install.usage", 0, nil),
		Action:  f.Action(t, cfg),
	}
}

// Action runs the installer in the working directory. It is also the root
// command's action, so running the binary without arguments installs.
func (f *InstallCommandFactory) Action(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		root := command.Root()

		dir, err := f.getwd()
		if err != nil {
			return errors.NewAppError(errors.TypeInternal, "Failed to get working directory", err)
		}

		inst := installer.New(dir, f.runner, git.NewGitService(f.runner), ui.NewConsole(root.Reader, root.Writer), t,
			installer.WithOutput(root.Writer),
			installer.WithConfig(cfg),
			installer.WithBanner(f.version),
		)

		if _, err := inst.Run(ctx); err != nil {
			if !stderrors.Is(err, errors.ErrCancelled) {
				ui.HandleAppError(root.Writer, err, t)
			}
			return err
		}
		return nil
	}
}
