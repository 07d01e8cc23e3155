package install

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/husky-installer/internal/config"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/shell"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

func runInstall(t *testing.T, dir, input string, runner *shell.MockRunner) (string, error) {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	factory := NewInstallCommandFactory(runner, "v1.2.0")
	factory.getwd = func() (string, error) { return dir, nil }

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "husky-installer",
		Reader:   strings.NewReader(input),
		Writer:   &out,
		Commands: []*cli.Command{factory.CreateCommand(trans, config.DefaultConfig())},
	}
	err = app.Run(context.Background(), []string{"husky-installer", "install"})
	return out.String(), err
}

func TestInstallCommand(t *testing.T) {
	t.Run("should print the error when the directory is not a repository", func(t *testing.T) {
		dir := t.TempDir()
		runner := new(shell.MockRunner)
		runner.On("Run", mock.Anything, dir, "git", "rev-parse", "--git-dir").
			Return("", errors.ErrCommandFailed.WithContext("exit_code", 128))

		out, err := runInstall(t, dir, "", runner)

		assert.ErrorIs(t, err, errors.ErrNotInGitRepo)
		assert.Contains(t, out, "PRECONDITION: Git repository not found")
		assert.Contains(t, out, "git init")
	})

	t.Run("should stay quiet about errors when the user cancels", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"app"}`), 0644))
		runner := new(shell.MockRunner)
		runner.On("Run", mock.Anything, dir, "git", "rev-parse", "--git-dir").Return(".git", nil)
		runner.On("Run", mock.Anything, dir, "git", "rev-parse", "--show-toplevel").Return(dir, nil)

		out, err := runInstall(t, dir, "", runner)

		assert.ErrorIs(t, err, errors.ErrCancelled)
		assert.Contains(t, out, "Installation cancelled.")
		assert.NotContains(t, out, "CANCELLED:")
		assert.Contains(t, out, "v1.2.0")
	})
}
