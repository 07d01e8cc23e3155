package version

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/urfave/cli/v3"
)

type VersionCommandFactory struct {
	version string
}

func NewVersionCommandFactory(version string) *VersionCommandFactory {
	return &VersionCommandFactory{version: version}
}

func (f *VersionCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: t.GetMessage("version.usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			_, err := fmt.Fprintln(command.Root().Writer, "husky-installer "+f.version)
			return err
		},
	}
}
